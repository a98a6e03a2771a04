// Package validation provides the error taxonomy and common validation utilities.
package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks inputs rejected before any computation
	// runs: non-positive horizons, negative counts or prices, zero MPG.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnreachableState marks an enum value outside its closed set.
	ErrUnreachableState = errors.New("unreachable state")
)

// Invalid wraps ErrInvalidConfiguration with a formatted description.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Unreachable wraps ErrUnreachableState with a formatted description.
func Unreachable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnreachableState, fmt.Sprintf(format, args...))
}

// NonNegative returns an invalid-configuration error when value is below zero.
func NonNegative(field string, value float64) error {
	if value < 0 {
		return Invalid("%s must not be negative, got %g", field, value)
	}
	return nil
}

// NonNegativeInt is the integer counterpart of NonNegative.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return Invalid("%s must not be negative, got %d", field, value)
	}
	return nil
}

// Positive returns an invalid-configuration error unless value is above zero.
func Positive(field string, value float64) error {
	if value <= 0 {
		return Invalid("%s must be positive, got %g", field, value)
	}
	return nil
}
