// Package sensitivity re-runs a projection while scaling one input at a time
// and reports how the headline figures move.
package sensitivity

import (
	"sort"
	"strings"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/finance"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Variable names an input that can be swept.
type Variable string

const (
	ConventionalFuelPrice Variable = "conventionalFuelPrice"
	CNGPrice              Variable = "cngPrice"
	VehicleCost           Variable = "vehicleCost"
	AnnualMiles           Variable = "annualMiles"
	StationCost           Variable = "stationCost"
)

// Variables lists every sweepable input in report order.
var Variables = []Variable{ConventionalFuelPrice, CNGPrice, VehicleCost, AnnualMiles, StationCost}

// ParseVariable converts a configuration string into a Variable.
func ParseVariable(s string) (Variable, error) {
	for _, v := range Variables {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", validation.Unreachable("unknown sensitivity variable %q", s)
}

// Point is one projection at a scaled input.
type Point struct {
	Multiplier  float64         `json:"multiplier"`
	ROI         float64         `json:"roi"`
	NetCashFlow float64         `json:"netCashFlow"`
	Payback     finance.Payback `json:"paybackPeriod"`
}

// Series holds the sweep of a single variable, ordered by multiplier.
type Series struct {
	Variable Variable `json:"variable"`
	Points   []Point  `json:"points"`
}

// Swing is the ROI range a variable produced across its sweep.
type Swing struct {
	Variable Variable `json:"variable"`
	LowROI   float64  `json:"lowRoi"`
	HighROI  float64  `json:"highRoi"`
	Range    float64  `json:"range"`
}

// Analyzer runs sweeps with a projector.
type Analyzer struct {
	projector *finance.Projector
	logger    *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil projector gets a quiet one and a nil
// logger is replaced with a no-op logger.
func NewAnalyzer(logger *zap.Logger, projector *finance.Projector) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if projector == nil {
		projector = finance.NewProjector(nil)
	}
	return &Analyzer{projector: projector, logger: logger}
}

// Analyze sweeps each variable over steps evenly spaced multipliers from
// 1-span to 1+span. steps below 2 falls back to the default step count and a
// non-positive span to the default span. An empty variable list sweeps all.
func (a *Analyzer) Analyze(in finance.Input, variables []Variable, steps int, span float64) ([]Series, error) {
	if steps < 2 {
		steps = constants.DefaultSensitivitySteps
	}
	if span <= 0 {
		span = constants.DefaultSensitivitySpan
	}
	if span >= 1 {
		return nil, validation.Invalid("sensitivity span must be below 1, got %g", span)
	}
	if len(variables) == 0 {
		variables = Variables
	}

	// Station cost is swept around the estimate, so resolve it once.
	baseline, err := a.projector.Project(in)
	if err != nil {
		return nil, err
	}

	multipliers := floats.Span(make([]float64, steps), 1-span, 1+span)
	out := make([]Series, 0, len(variables))
	for _, variable := range variables {
		series := Series{Variable: variable, Points: make([]Point, 0, steps)}
		for _, m := range multipliers {
			scaled, err := scale(in, variable, m, baseline.StationCost)
			if err != nil {
				return nil, err
			}
			results, err := a.projector.Project(scaled)
			if err != nil {
				return nil, err
			}
			series.Points = append(series.Points, Point{
				Multiplier:  m,
				ROI:         results.ROI,
				NetCashFlow: results.NetCashFlow,
				Payback:     results.Payback,
			})
		}
		a.logger.Debug("swept variable",
			zap.String("op", "sensitivity.Analyze"),
			zap.String("variable", string(variable)),
			zap.Int("steps", steps),
			zap.Float64("span", span),
		)
		out = append(out, series)
	}
	return out, nil
}

// Analyze is a convenience wrapper around Analyzer.Analyze.
func Analyze(projector *finance.Projector, in finance.Input, variables []Variable, steps int, span float64) ([]Series, error) {
	return NewAnalyzer(nil, projector).Analyze(in, variables, steps, span)
}

// scale returns a copy of in with variable multiplied by m. The distribution
// is copied so the caller's input is never mutated.
func scale(in finance.Input, variable Variable, m, baselineStationCost float64) (finance.Input, error) {
	out := in
	out.Distribution = append([]deployment.Year(nil), in.Distribution...)

	switch variable {
	case ConventionalFuelPrice:
		out.FuelPrices.Gasoline *= m
		out.FuelPrices.Diesel *= m
	case CNGPrice:
		out.FuelPrices.CNG *= m
	case VehicleCost:
		for _, class := range fleet.Classes {
			p := out.Vehicles.Class(class)
			p.Cost *= m
			out.Vehicles.SetClass(class, p)
		}
		for i := range out.Distribution {
			out.Distribution[i].Investment = out.Vehicles.Investment(out.Distribution[i].Counts())
		}
	case AnnualMiles:
		for _, class := range fleet.Classes {
			p := out.Vehicles.Class(class)
			p.AnnualMiles *= m
			out.Vehicles.SetClass(class, p)
		}
		// Keep the station fixed so only operating savings move.
		cost := baselineStationCost
		out.StationCost = &cost
	case StationCost:
		cost := baselineStationCost * m
		out.StationCost = &cost
	default:
		return finance.Input{}, validation.Unreachable("unknown sensitivity variable %q", variable)
	}
	return out, nil
}

// Tornado ranks variables by how far ROI moved across their sweep, widest
// first. Ties keep the input order.
func Tornado(series []Series) []Swing {
	swings := make([]Swing, 0, len(series))
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		rois := make([]float64, len(s.Points))
		for i, p := range s.Points {
			rois[i] = p.ROI
		}
		low, high := floats.Min(rois), floats.Max(rois)
		swings = append(swings, Swing{Variable: s.Variable, LowROI: low, HighROI: high, Range: high - low})
	}
	sort.SliceStable(swings, func(i, j int) bool {
		return swings[i].Range > swings[j].Range
	})
	return swings
}
