// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundWhole rounds a value to whole currency units.
func RoundWhole(val float64) float64 {
	return math.Round(val)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return WithinTolerance(val, 0, constants.CurrencyTolerance)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total. A zero
// total yields 0 rather than an infinity.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Escalation returns the compound multiplier (1 + rate/100)^years.
func Escalation(annualPercent float64, years int) float64 {
	return math.Pow(1+annualPercent/constants.PercentageMultiplier, float64(years))
}

// CeilDiv divides n by d rounding up. d must be positive.
func CeilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// CeilHalf returns ceil(n * 0.5).
func CeilHalf(n int) int {
	return int(math.Ceil(float64(n) * 0.5))
}
