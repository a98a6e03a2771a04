// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/iwvelando/fleet-forecast/internal/config"
	"github.com/iwvelando/fleet-forecast/pkg/datetime"
	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/finance"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/sensitivity"
	"github.com/iwvelando/fleet-forecast/pkg/station"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	RunID       string               `json:"runId"`
	Name        string               `json:"name"`
	StartYear   int                  `json:"startYear"`
	Years       []string             `json:"years"`
	Results     *finance.Results     `json:"results"`
	Notes       map[string][]string  `json:"notes,omitempty"`
	Sensitivity []sensitivity.Series `json:"sensitivity,omitempty"`
	Tornado     []sensitivity.Swing  `json:"tornado,omitempty"`
}

// StationEstimate is the station quote of one scenario.
type StationEstimate struct {
	Name         string         `json:"name"`
	Config       station.Config `json:"config"`
	Quote        station.Quote  `json:"quote"`
	AnnualTariff float64        `json:"annualTariff"`
}

// GetForecast processes the Forecasts for all active Scenarios. Every forecast
// of one call shares a run ID.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	return GetForecastWithRunID(logger, conf, uuid.New().String())
}

// GetForecastWithRunID is GetForecast with a caller-chosen run ID.
func GetForecastWithRunID(logger *zap.Logger, conf config.Configuration, runID string) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	projector := finance.NewProjector(logger)
	analyzer := sensitivity.NewAnalyzer(logger, projector)

	active := conf.ActiveScenarios()
	logger.Debug(fmt.Sprintf("forecasting %d of %d scenarios", len(active), len(conf.Scenarios)),
		zap.String("op", "forecast.GetForecast"),
	)

	var results []Forecast
	for _, scenario := range active {

		in, err := conf.Resolve(scenario)
		if err != nil {
			return results, err
		}

		input, err := ProjectionInput(in)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		projection, err := projector.Project(input)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		result := Forecast{
			RunID:     runID,
			Name:      scenario.Name,
			StartYear: in.StartYear,
			Years:     datetime.YearLabels(in.StartYear, in.TimeHorizon),
			Results:   projection,
		}
		result.Notes = yearNotes(in, projection, result.Years)

		if in.Sensitivity != nil {
			series, err := analyzer.Analyze(input, in.Sensitivity.Variables, in.Sensitivity.Steps, in.Sensitivity.Span)
			if err != nil {
				return results, fmt.Errorf("scenario %s sensitivity: %w", scenario.Name, err)
			}
			result.Sensitivity = series
			result.Tornado = sensitivity.Tornado(series)
		}

		logger.Info("computed forecast",
			zap.String("op", "forecast.GetForecast"),
			zap.String("runId", runID),
			zap.String("scenario", scenario.Name),
			zap.String("strategy", string(in.Strategy.Kind())),
			zap.Float64("netCashFlow", projection.NetCashFlow),
		)
		results = append(results, result)
	}

	return results, nil
}

// EstimateStations quotes the station of every active scenario without
// running the projection.
func EstimateStations(logger *zap.Logger, conf config.Configuration) ([]StationEstimate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var estimates []StationEstimate
	for _, scenario := range conf.ActiveScenarios() {
		in, err := conf.Resolve(scenario)
		if err != nil {
			return estimates, err
		}
		years, err := deployment.Distribute(in.Vehicles, in.TimeHorizon, in.Strategy)
		if err != nil {
			return estimates, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		quote, err := station.Estimate(in.Station, in.Vehicles, deployment.Counts(years))
		if err != nil {
			return estimates, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		if in.StationCost != nil {
			quote.Cost = *in.StationCost
		}
		tariff, err := station.AnnualTariff(in.Station, quote.Cost)
		if err != nil {
			return estimates, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		logger.Debug("estimated station",
			zap.String("op", "forecast.EstimateStations"),
			zap.String("scenario", scenario.Name),
			zap.String("tier", quote.Tier.String()),
			zap.Float64("cost", quote.Cost),
		)
		estimates = append(estimates, StationEstimate{
			Name:         scenario.Name,
			Config:       in.Station,
			Quote:        quote,
			AnnualTariff: tariff,
		})
	}
	return estimates, nil
}

// ProjectionInput converts a resolved scenario into the projector input,
// distributing the fleet with the scenario strategy.
func ProjectionInput(in config.ScenarioInput) (finance.Input, error) {
	years, err := deployment.Distribute(in.Vehicles, in.TimeHorizon, in.Strategy)
	if err != nil {
		return finance.Input{}, err
	}
	return finance.Input{
		Vehicles:     in.Vehicles,
		Station:      in.Station,
		FuelPrices:   in.FuelPrices,
		TimeHorizon:  in.TimeHorizon,
		Strategy:     in.Strategy.Kind(),
		Distribution: years,
		Options:      in.Options,
		StationCost:  in.StationCost,
	}, nil
}

// yearNotes annotates the calendar years in which something notable happens:
// conversions, retirements and payback.
func yearNotes(in config.ScenarioInput, results *finance.Results, labels []string) map[string][]string {
	notes := make(map[string][]string)

	for i, year := range results.VehicleDistribution {
		if n := year.Counts().Total(); n > 0 {
			notes[labels[i]] = append(notes[labels[i]], fmt.Sprintf("convert %d vehicles (%d light, %d medium, %d heavy)", n, year.Light, year.Medium, year.Heavy))
		}
	}

	if in.Options.RetireAtEndOfLife {
		for i := 1; i < len(results.OperatingVehicles); i++ {
			for _, class := range fleet.Classes {
				prev := results.OperatingVehicles[i-1].Get(class)
				added := results.VehicleDistribution[i].Counts().Get(class)
				if retired := prev + added - results.OperatingVehicles[i].Get(class); retired > 0 {
					notes[labels[i]] = append(notes[labels[i]], fmt.Sprintf("retire %d %s vehicles", retired, class))
				}
			}
		}
	}

	if index, ok := results.Payback.YearIndex(); ok {
		notes[labels[index]] = append(notes[labels[index]], "payback reached ("+results.Payback.String()+")")
	}

	if len(notes) == 0 {
		return nil
	}
	return notes
}
