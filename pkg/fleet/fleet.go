// Package fleet defines the vehicle fleet and fuel price inputs shared by the
// station estimator, the deployment distributor and the financial projector.
package fleet

import (
	"fmt"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// Class identifies a vehicle duty class.
type Class int

const (
	Light Class = iota
	Medium
	Heavy
)

// Classes lists every vehicle class in reporting order.
var Classes = []Class{Light, Medium, Heavy}

// String returns the lower-case class name used in configuration and logs.
func (c Class) String() string {
	switch c {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// CNGEfficiency is the fraction of conventional fuel economy a CNG vehicle of
// this class retains per GGE.
func (c Class) CNGEfficiency() float64 {
	switch c {
	case Light:
		return constants.LightDutyCNGEfficiency
	case Medium:
		return constants.MediumDutyCNGEfficiency
	default:
		return constants.HeavyDutyCNGEfficiency
	}
}

// UsesGasoline reports whether the conventional comparison fuel is gasoline.
// Medium and heavy duty vehicles compare against diesel.
func (c Class) UsesGasoline() bool {
	return c == Light
}

// ConventionalEmissionFactor returns kg CO2 per gallon of the comparison fuel.
func (c Class) ConventionalEmissionFactor() float64 {
	if c.UsesGasoline() {
		return constants.GasolineEmissionFactor
	}
	return constants.DieselEmissionFactor
}

// Counts holds a vehicle count per class.
type Counts struct {
	Light  int `json:"light" yaml:"light"`
	Medium int `json:"medium" yaml:"medium"`
	Heavy  int `json:"heavy" yaml:"heavy"`
}

// Get returns the count for class c.
func (c Counts) Get(class Class) int {
	switch class {
	case Light:
		return c.Light
	case Medium:
		return c.Medium
	default:
		return c.Heavy
	}
}

// Set stores n as the count for class c.
func (c *Counts) Set(class Class, n int) {
	switch class {
	case Light:
		c.Light = n
	case Medium:
		c.Medium = n
	default:
		c.Heavy = n
	}
}

// Add returns the element-wise sum of c and o.
func (c Counts) Add(o Counts) Counts {
	return Counts{Light: c.Light + o.Light, Medium: c.Medium + o.Medium, Heavy: c.Heavy + o.Heavy}
}

// Total returns the number of vehicles across all classes.
func (c Counts) Total() int {
	return c.Light + c.Medium + c.Heavy
}

// Validate rejects negative counts.
func (c Counts) Validate() error {
	for _, class := range Classes {
		if err := validation.NonNegativeInt(class.String()+" count", c.Get(class)); err != nil {
			return err
		}
	}
	return nil
}

// ClassParameters describes one vehicle class of the fleet.
type ClassParameters struct {
	Count       int     `json:"count"`
	Cost        float64 `json:"cost"`     // conversion or acquisition cost per vehicle
	Lifespan    int     `json:"lifespan"` // years
	MPG         float64 `json:"mpg"`      // conventional fuel economy
	AnnualMiles float64 `json:"annualMiles"`
}

// CNGMPG returns miles per GGE once the class efficiency derate is applied.
func (p ClassParameters) CNGMPG(class Class) float64 {
	return p.MPG * class.CNGEfficiency()
}

// AnnualGGE returns the CNG fuel a single vehicle consumes per year.
func (p ClassParameters) AnnualGGE(class Class) float64 {
	cngMPG := p.CNGMPG(class)
	if cngMPG <= 0 {
		return 0
	}
	return p.AnnualMiles / cngMPG
}

// VehicleParameters holds the fleet composition.
type VehicleParameters struct {
	Light  ClassParameters `json:"light"`
	Medium ClassParameters `json:"medium"`
	Heavy  ClassParameters `json:"heavy"`
}

// Class returns the parameters for class c.
func (v VehicleParameters) Class(c Class) ClassParameters {
	switch c {
	case Light:
		return v.Light
	case Medium:
		return v.Medium
	default:
		return v.Heavy
	}
}

// SetClass replaces the parameters for class c.
func (v *VehicleParameters) SetClass(c Class, p ClassParameters) {
	switch c {
	case Light:
		v.Light = p
	case Medium:
		v.Medium = p
	default:
		v.Heavy = p
	}
}

// Counts returns the total fleet count per class.
func (v VehicleParameters) Counts() Counts {
	return Counts{Light: v.Light.Count, Medium: v.Medium.Count, Heavy: v.Heavy.Count}
}

// Investment returns the vehicle capital required for the given counts.
func (v VehicleParameters) Investment(counts Counts) float64 {
	total := 0.0
	for _, class := range Classes {
		total += float64(counts.Get(class)) * v.Class(class).Cost
	}
	return total
}

// Validate rejects negative counts, costs, lifespans and mileage and
// non-positive MPG.
func (v VehicleParameters) Validate() error {
	for _, class := range Classes {
		p := v.Class(class)
		name := class.String()
		if err := validation.NonNegativeInt(name+" count", p.Count); err != nil {
			return err
		}
		if err := validation.NonNegative(name+" cost", p.Cost); err != nil {
			return err
		}
		if err := validation.NonNegativeInt(name+" lifespan", p.Lifespan); err != nil {
			return err
		}
		if err := validation.NonNegative(name+" annual miles", p.AnnualMiles); err != nil {
			return err
		}
		if err := validation.Positive(name+" mpg", p.MPG); err != nil {
			return err
		}
	}
	return nil
}

// FuelPrices holds nominal fuel prices and their compounding annual increase.
type FuelPrices struct {
	Gasoline       float64 `json:"gasoline"` // USD per gallon
	Diesel         float64 `json:"diesel"`   // USD per gallon
	CNG            float64 `json:"cng"`      // USD per GGE
	AnnualIncrease float64 `json:"annualIncrease"`
}

// Conventional returns the comparison fuel price for class c.
func (f FuelPrices) Conventional(c Class) float64 {
	if c.UsesGasoline() {
		return f.Gasoline
	}
	return f.Diesel
}

// Validate rejects negative prices.
func (f FuelPrices) Validate() error {
	if err := validation.NonNegative("gasoline price", f.Gasoline); err != nil {
		return err
	}
	if err := validation.NonNegative("diesel price", f.Diesel); err != nil {
		return err
	}
	return validation.NonNegative("cng price", f.CNG)
}
