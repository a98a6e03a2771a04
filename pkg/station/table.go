package station

import (
	"math"

	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// Tier is a station capacity class.
type Tier int

const (
	Small Tier = iota
	MediumTier
	Large
	XLarge
)

// Tiers lists every capacity tier from smallest to largest.
var Tiers = []Tier{Small, MediumTier, Large, XLarge}

func (t Tier) String() string {
	switch t {
	case Small:
		return "small"
	case MediumTier:
		return "medium"
	case Large:
		return "large"
	case XLarge:
		return "xlarge"
	}
	return "unknown"
}

// MarshalText renders the tier name in JSON and YAML output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type tierBound struct {
	tier  Tier
	upper float64 // exclusive, GGE per day
}

// tierBounds must be strictly increasing and end at +Inf.
var tierBounds = []tierBound{
	{Small, 100},
	{MediumTier, 300},
	{Large, 750},
	{XLarge, math.Inf(1)},
}

// baseCosts holds capital cost in USD by fill type and tier. Time-fill is
// cheaper for small stations; the gap closes as compression dominates.
var baseCosts = map[Type]map[Tier]float64{
	FastFill: {
		Small:      1200000,
		MediumTier: 1800000,
		Large:      2500000,
		XLarge:     3200000,
	},
	TimeFill: {
		Small:      600000,
		MediumTier: 1100000,
		Large:      2200000,
		XLarge:     3000000,
	},
}

var businessMultipliers = map[Business]float64{
	AGLC: 1.00,
	CGC:  1.05,
	VNG:  0.95,
}

// monthlyTariffRates are percent of station cost charged per month.
var monthlyTariffRates = map[Business]float64{
	AGLC: 1.5,
	CGC:  1.6,
	VNG:  1.5,
}

// Classify maps a daily throughput onto its capacity tier.
func Classify(dailyGGE float64) (Tier, error) {
	if dailyGGE < 0 || math.IsNaN(dailyGGE) {
		return 0, validation.Invalid("daily throughput must be a non-negative number, got %g", dailyGGE)
	}
	for _, b := range tierBounds {
		if dailyGGE < b.upper {
			return b.tier, nil
		}
	}
	return 0, validation.Unreachable("throughput %g above every tier bound", dailyGGE)
}

// ValidateTiers checks that tier bounds are strictly increasing and cover
// every non-negative throughput.
func ValidateTiers() error {
	prev := 0.0
	for i, b := range tierBounds {
		if b.upper <= prev {
			return validation.Invalid("tier %s bound %g does not exceed %g", b.tier, b.upper, prev)
		}
		if i > 0 && b.tier <= tierBounds[i-1].tier {
			return validation.Invalid("tier %s is out of order", b.tier)
		}
		prev = b.upper
	}
	if !math.IsInf(prev, 1) {
		return validation.Invalid("largest tier is bounded at %g", prev)
	}
	return nil
}

// ValidateTable checks that every station type prices every tier.
func ValidateTable() error {
	for _, typ := range []Type{FastFill, TimeFill} {
		row, ok := baseCosts[typ]
		if !ok {
			return validation.Invalid("cost table is missing station type %s", typ)
		}
		for _, tier := range Tiers {
			if _, ok := row[tier]; !ok {
				return validation.Invalid("cost table is missing %s/%s", typ, tier)
			}
		}
	}
	return nil
}

// checkTables runs both table checks; Estimate refuses to price against a
// table that fails either.
func checkTables() error {
	if err := ValidateTiers(); err != nil {
		return err
	}
	return ValidateTable()
}

// BaseCost exposes the table entry for a type and tier.
func BaseCost(typ Type, tier Tier) (float64, error) {
	cost, ok := baseCosts[typ][tier]
	if !ok {
		return 0, validation.Unreachable("no cost entry for %s station at tier %s", typ, tier)
	}
	return cost, nil
}
