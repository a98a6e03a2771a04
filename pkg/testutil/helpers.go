// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/fleet-forecast/internal/forecast"
	"github.com/iwvelando/fleet-forecast/pkg/sensitivity"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindSeries returns the sweep of variable, or nil when it was not swept.
func FindSeries(series []sensitivity.Series, variable sensitivity.Variable) *sensitivity.Series {
	for i := range series {
		if series[i].Variable == variable {
			return &series[i]
		}
	}
	return nil
}
