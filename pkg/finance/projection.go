// Package finance projects the yearly cash flow of a fleet conversion:
// fuel and maintenance savings, cumulative investment, payback, returns and
// avoided emissions.
package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/mathutil"
	"github.com/iwvelando/fleet-forecast/pkg/station"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Options toggles optional model behavior.
type Options struct {
	// RetireAtEndOfLife removes vehicles from the operating fleet once they
	// have run for their class lifespan. Off by default: converted vehicles
	// stay in operation for the rest of the horizon. A lifespan of zero never
	// retires.
	RetireAtEndOfLife bool `json:"retireAtEndOfLife"`
}

// Input is the immutable snapshot a projection runs on.
type Input struct {
	Vehicles     fleet.VehicleParameters
	Station      station.Config
	FuelPrices   fleet.FuelPrices
	TimeHorizon  int
	Strategy     deployment.Kind
	Distribution []deployment.Year
	Options      Options

	// StationCost overrides the estimator when set.
	StationCost *float64
}

// Results holds every series and figure derived from one projection.
type Results struct {
	Strategy    deployment.Kind `json:"strategy"`
	TimeHorizon int             `json:"timeHorizon"`

	Station           *station.Quote `json:"station,omitempty"`
	StationCost       float64        `json:"stationCost"`
	AnnualTariff      float64        `json:"annualTariff"`
	VehicleInvestment float64        `json:"vehicleInvestment"`
	TotalInvestment   float64        `json:"totalInvestment"`

	OperatingVehicles        []fleet.Counts `json:"operatingVehicles"`
	YearlyFuelSavings        []float64      `json:"yearlyFuelSavings"`
	YearlyMaintenanceSavings []float64      `json:"yearlyMaintenanceSavings"`
	YearlySavings            []float64      `json:"yearlySavings"`
	CumulativeSavings        []float64      `json:"cumulativeSavings"`
	CumulativeInvestment     []float64      `json:"cumulativeInvestment"`

	Payback            Payback `json:"paybackPeriod"`
	ROI                float64 `json:"roi"`
	AnnualRateOfReturn float64 `json:"annualRateOfReturn"`
	NetCashFlow        float64 `json:"netCashFlow"`
	// ZeroInvestment marks ROI and rate of return as not applicable.
	ZeroInvestment bool `json:"zeroInvestment"`

	CO2Reduction             float64   `json:"co2Reduction"`
	YearlyEmissionsSaved     []float64 `json:"yearlyEmissionsSaved"`
	CumulativeEmissionsSaved []float64 `json:"cumulativeEmissionsSaved"`
	TotalEmissionsSaved      float64   `json:"totalEmissionsSaved"`

	CostPerMileGasoline float64 `json:"costPerMileGasoline"`
	CostPerMileCNG      float64 `json:"costPerMileCNG"`
	CostReduction       float64 `json:"costReduction"`

	VehicleDistribution []deployment.Year `json:"vehicleDistribution"`
}

// FinalCumulativeSavings returns the last cumulative savings value.
func (r *Results) FinalCumulativeSavings() float64 {
	if len(r.CumulativeSavings) == 0 {
		return 0
	}
	return r.CumulativeSavings[len(r.CumulativeSavings)-1]
}

// Projector runs projections. It holds no state besides its logger and is
// safe for concurrent use.
type Projector struct {
	logger *zap.Logger
}

// NewProjector creates a projector with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewProjector(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{logger: logger}
}

// Validate rejects inputs the projection cannot run on.
func (in Input) Validate() error {
	if in.TimeHorizon <= 0 {
		return validation.Invalid("time horizon must be positive, got %d", in.TimeHorizon)
	}
	if len(in.Distribution) != in.TimeHorizon {
		return validation.Invalid("distribution covers %d years, time horizon is %d", len(in.Distribution), in.TimeHorizon)
	}
	if _, err := deployment.ParseKind(string(in.Strategy)); err != nil {
		return err
	}
	if err := in.Vehicles.Validate(); err != nil {
		return err
	}
	if err := in.FuelPrices.Validate(); err != nil {
		return err
	}
	if err := in.Station.Validate(); err != nil {
		return err
	}
	if in.StationCost != nil {
		if err := validation.NonNegative("station cost", *in.StationCost); err != nil {
			return err
		}
	}
	for i, year := range in.Distribution {
		if err := year.Counts().Validate(); err != nil {
			return fmt.Errorf("distribution year %d: %w", i+1, err)
		}
	}
	return nil
}

// Project computes the year-by-year savings and investment for the input.
func (p *Projector) Project(in Input) (*Results, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	results := &Results{
		Strategy:            in.Strategy,
		TimeHorizon:         in.TimeHorizon,
		VehicleDistribution: append([]deployment.Year(nil), in.Distribution...),
	}

	if in.StationCost != nil {
		results.StationCost = *in.StationCost
	} else {
		quote, err := station.Estimate(in.Station, in.Vehicles, deployment.Counts(in.Distribution))
		if err != nil {
			return nil, err
		}
		results.Station = &quote
		results.StationCost = quote.Cost
	}

	tariff, err := station.AnnualTariff(in.Station, results.StationCost)
	if err != nil {
		return nil, err
	}
	results.AnnualTariff = tariff

	horizon := in.TimeHorizon
	results.OperatingVehicles = operatingFleet(in.Vehicles, in.Distribution, in.Options)
	results.YearlyFuelSavings = make([]float64, horizon)
	results.YearlyMaintenanceSavings = make([]float64, horizon)
	results.YearlySavings = make([]float64, horizon)
	results.YearlyEmissionsSaved = make([]float64, horizon)
	baselineEmissions := 0.0

	savings := newLedger(horizon)
	investment := newLedger(horizon)

	for year := 0; year < horizon; year++ {
		operating := results.OperatingVehicles[year]
		escalation := mathutil.Escalation(in.FuelPrices.AnnualIncrease, year)

		fuel := fuelSavings(in.Vehicles, in.FuelPrices, operating, escalation)
		maintenance := fuel * constants.MaintenanceSavingsRate
		yearly := mathutil.RoundWhole(fuel + maintenance)

		results.YearlyFuelSavings[year] = mathutil.Round(fuel)
		results.YearlyMaintenanceSavings[year] = mathutil.Round(maintenance)
		results.YearlySavings[year] = yearly
		savings.post(yearly)

		outflow := in.Distribution[year].Investment
		results.VehicleInvestment += outflow
		if in.Station.Turnkey {
			if year == 0 {
				outflow += results.StationCost
			}
		} else {
			outflow += tariff
		}
		investment.post(outflow)

		saved, baseline := emissions(in.Vehicles, operating)
		results.YearlyEmissionsSaved[year] = saved
		baselineEmissions += baseline

		p.logger.Debug("projected year",
			zap.String("op", "finance.Project"),
			zap.Int("year", year),
			zap.Int("operatingVehicles", operating.Total()),
			zap.Float64("escalation", escalation),
			zap.Float64("savings", yearly),
			zap.Float64("outflow", outflow),
		)
	}

	results.CumulativeSavings = savings.series
	results.CumulativeInvestment = investment.series
	results.TotalInvestment = investment.totalFloat()

	finalSavings := results.FinalCumulativeSavings()
	results.NetCashFlow = mathutil.Round(finalSavings - results.TotalInvestment)
	results.Payback = FindPayback(results.CumulativeSavings, results.CumulativeInvestment)

	if mathutil.IsZero(results.TotalInvestment) {
		results.ZeroInvestment = true
	} else {
		results.ROI = finalSavings / results.TotalInvestment * constants.PercentageMultiplier
		results.AnnualRateOfReturn = annualRateOfReturn(finalSavings, results.TotalInvestment, horizon)
	}

	results.CumulativeEmissionsSaved = cumulative(results.YearlyEmissionsSaved)
	results.TotalEmissionsSaved = results.CumulativeEmissionsSaved[horizon-1]
	results.CO2Reduction = mathutil.CalculatePercentage(results.TotalEmissionsSaved, baselineEmissions)

	results.CostPerMileGasoline, results.CostPerMileCNG, results.CostReduction = costPerMile(in.Vehicles.Light, in.FuelPrices)

	p.logger.Info("projection complete",
		zap.String("op", "finance.Project"),
		zap.String("strategy", string(in.Strategy)),
		zap.Int("timeHorizon", horizon),
		zap.Float64("totalInvestment", results.TotalInvestment),
		zap.Float64("cumulativeSavings", finalSavings),
		zap.String("payback", results.Payback.String()),
	)

	return results, nil
}

// operatingFleet returns the vehicles in service for every year: everything
// deployed so far, minus retirements when enabled.
func operatingFleet(params fleet.VehicleParameters, distribution []deployment.Year, opts Options) []fleet.Counts {
	out := make([]fleet.Counts, len(distribution))
	for year := range distribution {
		var operating fleet.Counts
		for deployed := 0; deployed <= year; deployed++ {
			cohort := distribution[deployed].Counts()
			for _, class := range fleet.Classes {
				lifespan := params.Class(class).Lifespan
				if opts.RetireAtEndOfLife && lifespan > 0 && year >= deployed+lifespan {
					continue
				}
				operating.Set(class, operating.Get(class)+cohort.Get(class))
			}
		}
		out[year] = operating
	}
	return out
}

// fuelSavings is the conventional fuel bill avoided by the operating fleet
// minus the CNG bill, at escalated prices.
func fuelSavings(params fleet.VehicleParameters, prices fleet.FuelPrices, operating fleet.Counts, escalation float64) float64 {
	total := 0.0
	cngPrice := prices.CNG * escalation
	for _, class := range fleet.Classes {
		n := operating.Get(class)
		if n == 0 {
			continue
		}
		p := params.Class(class)
		miles := float64(n) * p.AnnualMiles
		conventional := prices.Conventional(class) * escalation / p.MPG
		cng := cngPrice / p.CNGMPG(class)
		total += miles * (conventional - cng)
	}
	return total
}

func annualRateOfReturn(finalSavings, totalInvestment float64, horizon int) float64 {
	base := finalSavings/totalInvestment + 1
	if base <= 0 {
		return -constants.PercentageMultiplier
	}
	return (math.Pow(base, 1/float64(horizon)) - 1) * constants.PercentageMultiplier
}

// costPerMile compares light-duty cost per mile at nominal prices.
func costPerMile(light fleet.ClassParameters, prices fleet.FuelPrices) (gasoline, cng, reduction float64) {
	gasoline = prices.Gasoline / light.MPG
	cng = prices.CNG / light.CNGMPG(fleet.Light)
	reduction = mathutil.CalculatePercentage(gasoline-cng, gasoline)
	return gasoline, cng, reduction
}
