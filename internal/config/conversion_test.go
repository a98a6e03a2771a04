package config

import (
	"errors"
	"testing"

	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/sensitivity"
	"github.com/iwvelando/fleet-forecast/pkg/station"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

func TestResolveCommon(t *testing.T) {
	conf := loadSample(t)

	in, err := conf.Resolve(conf.Scenarios[0])
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if in.TimeHorizon != 5 || in.StartYear != 2025 {
		t.Errorf("unexpected horizon/start year %d/%d", in.TimeHorizon, in.StartYear)
	}
	if in.Strategy.Kind() != deployment.KindPhased {
		t.Errorf("expected phased strategy, got %s", in.Strategy.Kind())
	}
	want := station.Config{Type: station.FastFill, Business: station.CGC, Turnkey: false, Sizing: station.SizeTotal}
	if in.Station != want {
		t.Errorf("station = %+v, want %+v", in.Station, want)
	}
	if in.StationCost != nil {
		t.Errorf("expected no station cost override")
	}
	if in.Vehicles.Medium != (fleet.ClassParameters{Count: 5, Cost: 35000, Lifespan: 10, MPG: 10, AnnualMiles: 20000}) {
		t.Errorf("unexpected medium parameters %+v", in.Vehicles.Medium)
	}
	if in.FuelPrices.AnnualIncrease != 2 {
		t.Errorf("expected 2%% escalation, got %v", in.FuelPrices.AnnualIncrease)
	}
	if in.Sensitivity != nil {
		t.Errorf("expected sensitivity disabled")
	}
}

func TestResolveOverrides(t *testing.T) {
	conf := loadSample(t)

	manual, err := conf.Resolve(conf.Scenarios[1])
	if err != nil {
		t.Fatalf("Resolve(manual) error = %v", err)
	}
	if manual.TimeHorizon != 3 {
		t.Errorf("expected scenario horizon 3, got %d", manual.TimeHorizon)
	}
	rows, ok := manual.Strategy.(deployment.Manual)
	if !ok {
		t.Fatalf("expected manual strategy, got %T", manual.Strategy)
	}
	if len(rows.Years) != 3 || rows.Years[2] != (fleet.Counts{Heavy: 2}) {
		t.Errorf("unexpected manual rows %+v", rows.Years)
	}

	cheap, err := conf.Resolve(conf.Scenarios[2])
	if err != nil {
		t.Fatalf("Resolve(cheap station) error = %v", err)
	}
	if cheap.Station.Type != station.TimeFill || cheap.Station.Business != station.VNG || !cheap.Station.Turnkey || cheap.Station.Sizing != station.SizePeak {
		t.Errorf("station override not applied: %+v", cheap.Station)
	}
	if cheap.StationCost == nil || *cheap.StationCost != 250000 {
		t.Errorf("expected station cost 250000, got %v", cheap.StationCost)
	}

	*cheap.StationCost = 1
	if *conf.Scenarios[2].Station.Cost != 250000 {
		t.Errorf("resolved input must not alias the configuration")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Configuration)
		kind   error
	}{
		{
			name:   "unknown business",
			mutate: func(c *Configuration) { c.Common.Station.BusinessType = "acme" },
			kind:   validation.ErrUnreachableState,
		},
		{
			name:   "unknown strategy",
			mutate: func(c *Configuration) { c.Scenarios[0].Strategy = "lazy" },
			kind:   validation.ErrUnreachableState,
		},
		{
			name:   "zero mpg",
			mutate: func(c *Configuration) { c.Common.Vehicles.Light.MPG = 0 },
			kind:   validation.ErrInvalidConfiguration,
		},
		{
			name:   "negative fuel price",
			mutate: func(c *Configuration) { c.Common.Fuel.CNG = -2 },
			kind:   validation.ErrInvalidConfiguration,
		},
		{
			name:   "negative horizon",
			mutate: func(c *Configuration) { c.Common.TimeHorizon = -1 },
			kind:   validation.ErrInvalidConfiguration,
		},
		{
			name: "sensitivity span out of range",
			mutate: func(c *Configuration) {
				c.Common.Sensitivity = Sensitivity{Enabled: true, Steps: 3, Span: 1.5}
			},
			kind: validation.ErrInvalidConfiguration,
		},
		{
			name: "unknown sensitivity variable",
			mutate: func(c *Configuration) {
				c.Common.Sensitivity = Sensitivity{Enabled: true, Steps: 3, Span: 0.1, Variables: []string{"rainfall"}}
			},
			kind: validation.ErrUnreachableState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := loadSample(t)
			tt.mutate(conf)
			_, err := conf.Resolve(conf.Scenarios[0])
			if !errors.Is(err, tt.kind) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestSensitivityToInput(t *testing.T) {
	in, err := Sensitivity{Enabled: true, Steps: 3, Span: 0.1, Variables: []string{"cngPrice", "stationcost"}}.ToInput()
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}
	if len(in.Variables) != 2 || in.Variables[0] != sensitivity.CNGPrice || in.Variables[1] != sensitivity.StationCost {
		t.Errorf("unexpected variables %v", in.Variables)
	}

	disabled, err := Sensitivity{Steps: 3, Span: 0.1}.ToInput()
	if err != nil || disabled != nil {
		t.Errorf("expected nil input for disabled sweeps, got %v, %v", disabled, err)
	}
}
