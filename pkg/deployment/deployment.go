// Package deployment distributes fleet conversions across the years of the
// analysis horizon according to a deployment strategy.
package deployment

import (
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// Year holds the vehicles converted in a single year (not cumulative) and
// the vehicle capital spent that year.
type Year struct {
	Light      int     `json:"light"`
	Medium     int     `json:"medium"`
	Heavy      int     `json:"heavy"`
	Investment float64 `json:"investment"`
}

// Counts returns the per-class counts of the year.
func (y Year) Counts() fleet.Counts {
	return fleet.Counts{Light: y.Light, Medium: y.Medium, Heavy: y.Heavy}
}

// Distribute returns exactly horizon years of deployments for the strategy.
// Short allocations are padded with empty years.
func Distribute(params fleet.VehicleParameters, horizon int, strategy Strategy) ([]Year, error) {
	if horizon <= 0 {
		return nil, validation.Invalid("time horizon must be positive, got %d", horizon)
	}
	if strategy == nil {
		return nil, validation.Unreachable("no deployment strategy")
	}
	if err := params.Counts().Validate(); err != nil {
		return nil, err
	}

	allocated, err := strategy.allocate(params, horizon)
	if err != nil {
		return nil, err
	}
	if len(allocated) > horizon {
		return nil, validation.Invalid("%s strategy produced %d years for a %d year horizon", strategy.Kind(), len(allocated), horizon)
	}

	years := make([]Year, horizon)
	for i, counts := range allocated {
		years[i] = Year{
			Light:      counts.Light,
			Medium:     counts.Medium,
			Heavy:      counts.Heavy,
			Investment: params.Investment(counts),
		}
	}
	return years, nil
}

// Counts extracts the per-year counts of a distribution.
func Counts(years []Year) []fleet.Counts {
	out := make([]fleet.Counts, len(years))
	for i, y := range years {
		out[i] = y.Counts()
	}
	return out
}

// Totals sums a distribution per class.
func Totals(years []Year) fleet.Counts {
	var total fleet.Counts
	for _, y := range years {
		total = total.Add(y.Counts())
	}
	return total
}
