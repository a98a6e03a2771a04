// Package datetime maps horizon year indexes onto calendar years.
package datetime

import "strconv"

// CalendarYear returns the calendar year of the horizon year at index.
// Index 0 is the start year.
func CalendarYear(startYear, index int) int {
	return startYear + index
}

// YearLabels returns one label per horizon year, starting at startYear.
func YearLabels(startYear, horizon int) []string {
	if horizon <= 0 {
		return nil
	}
	labels := make([]string, horizon)
	for i := range labels {
		labels[i] = strconv.Itoa(CalendarYear(startYear, i))
	}
	return labels
}
