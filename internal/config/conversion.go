package config

import (
	"fmt"

	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/finance"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/sensitivity"
	"github.com/iwvelando/fleet-forecast/pkg/station"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// ScenarioInput is a scenario merged with the common parameters and
// converted into engine types.
type ScenarioInput struct {
	Name        string
	StartYear   int
	TimeHorizon int
	Vehicles    fleet.VehicleParameters
	Station     station.Config
	StationCost *float64
	FuelPrices  fleet.FuelPrices
	Strategy    deployment.Strategy
	Options     finance.Options
	Sensitivity *SensitivityInput
}

// SensitivityInput is the converted sweep configuration. It is nil on a
// ScenarioInput when sweeps are disabled.
type SensitivityInput struct {
	Variables []sensitivity.Variable
	Steps     int
	Span      float64
}

// ToParameters converts the configured fleet.
func (v Vehicles) ToParameters() fleet.VehicleParameters {
	return fleet.VehicleParameters{
		Light:  v.Light.toClass(),
		Medium: v.Medium.toClass(),
		Heavy:  v.Heavy.toClass(),
	}
}

func (c VehicleClass) toClass() fleet.ClassParameters {
	return fleet.ClassParameters{
		Count:       c.Count,
		Cost:        c.Cost,
		Lifespan:    c.Lifespan,
		MPG:         c.MPG,
		AnnualMiles: c.AnnualMiles,
	}
}

// ToStationConfig parses the station enums. Unknown values fail with
// ErrUnreachableState.
func (s Station) ToStationConfig() (station.Config, error) {
	t, err := station.ParseType(s.Type)
	if err != nil {
		return station.Config{}, err
	}
	b, err := station.ParseBusiness(s.BusinessType)
	if err != nil {
		return station.Config{}, err
	}
	m, err := station.ParseSizing(s.SizingMethod)
	if err != nil {
		return station.Config{}, err
	}
	return station.Config{Type: t, Business: b, Turnkey: s.Turnkey, Sizing: m}, nil
}

// ToPrices converts the configured fuel prices.
func (f Fuel) ToPrices() fleet.FuelPrices {
	return fleet.FuelPrices{
		Gasoline:       f.Gasoline,
		Diesel:         f.Diesel,
		CNG:            f.CNG,
		AnnualIncrease: f.AnnualIncrease,
	}
}

// ToStrategy returns the deployment strategy of the scenario.
func (s Scenario) ToStrategy() (deployment.Strategy, error) {
	kind, err := deployment.ParseKind(s.Strategy)
	if err != nil {
		return nil, err
	}
	var rows []fleet.Counts
	if kind == deployment.KindManual {
		rows = make([]fleet.Counts, len(s.Manual))
		for i, row := range s.Manual {
			rows[i] = fleet.Counts{Light: row.Light, Medium: row.Medium, Heavy: row.Heavy}
		}
	}
	return deployment.StrategyFor(kind, rows)
}

// ToInput converts the sweep configuration, or returns nil when disabled.
func (s Sensitivity) ToInput() (*SensitivityInput, error) {
	if !s.Enabled {
		return nil, nil
	}
	if s.Steps < 2 {
		return nil, validation.Invalid("sensitivity steps must be at least 2, got %d", s.Steps)
	}
	if s.Span <= 0 || s.Span >= 1 {
		return nil, validation.Invalid("sensitivity span must be between 0 and 1, got %g", s.Span)
	}
	in := &SensitivityInput{Steps: s.Steps, Span: s.Span}
	for _, name := range s.Variables {
		v, err := sensitivity.ParseVariable(name)
		if err != nil {
			return nil, err
		}
		in.Variables = append(in.Variables, v)
	}
	return in, nil
}

// Resolve merges the scenario with the common parameters. Scenario station,
// fuel, vehicle and sensitivity blocks replace the common ones wholesale.
func (c *Configuration) Resolve(s Scenario) (ScenarioInput, error) {
	in := ScenarioInput{
		Name:        s.Name,
		StartYear:   c.Common.StartYear,
		TimeHorizon: s.horizon(c.Common),
		Options:     finance.Options{RetireAtEndOfLife: s.RetireVehicles},
	}
	if in.TimeHorizon <= 0 {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, validation.Invalid("time horizon must be positive, got %d", in.TimeHorizon))
	}

	vehicles := c.Common.Vehicles
	if s.Vehicles != nil {
		vehicles = *s.Vehicles
	}
	in.Vehicles = vehicles.ToParameters()
	if err := in.Vehicles.Validate(); err != nil {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	stationConf := c.Common.Station
	if s.Station != nil {
		stationConf = *s.Station
	}
	cfg, err := stationConf.ToStationConfig()
	if err != nil {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	in.Station = cfg
	if stationConf.Cost != nil {
		cost := *stationConf.Cost
		in.StationCost = &cost
	}

	fuel := c.Common.Fuel
	if s.Fuel != nil {
		fuel = *s.Fuel
	}
	in.FuelPrices = fuel.ToPrices()
	if err := in.FuelPrices.Validate(); err != nil {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	strategy, err := s.ToStrategy()
	if err != nil {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	in.Strategy = strategy

	sweep := c.Common.Sensitivity
	if s.Sensitivity != nil {
		sweep = *s.Sensitivity
	}
	in.Sensitivity, err = sweep.ToInput()
	if err != nil {
		return ScenarioInput{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	return in, nil
}
