// Package station estimates the capital cost of a CNG fueling station sized to
// the fleet it serves, and the tariff charged when the station is financed by
// the gas utility instead of bought outright.
package station

import (
	"strings"

	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/mathutil"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// Type is the fill method of the station.
type Type string

const (
	FastFill Type = "fast"
	TimeFill Type = "time"
)

// Business identifies the local gas distribution company operating the station.
type Business string

const (
	AGLC Business = "aglc"
	CGC  Business = "cgc"
	VNG  Business = "vng"
)

// Sizing selects which vehicle counts drive the capacity requirement.
type Sizing string

const (
	// SizeTotal sizes the station for the whole fleet.
	SizeTotal Sizing = "total"
	// SizePeak sizes the station for the largest single-year deployment.
	SizePeak Sizing = "peak"
)

// Config describes the station to be built.
type Config struct {
	Type     Type     `json:"type"`
	Business Business `json:"businessType"`
	Turnkey  bool     `json:"turnkey"`
	Sizing   Sizing   `json:"sizingMethod"`
}

// ParseType converts a configuration string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case FastFill, TimeFill:
		return t, nil
	}
	return "", validation.Unreachable("unknown station type %q", s)
}

// ParseBusiness converts a configuration string into a Business.
func ParseBusiness(s string) (Business, error) {
	b := Business(strings.ToLower(strings.TrimSpace(s)))
	switch b {
	case AGLC, CGC, VNG:
		return b, nil
	}
	return "", validation.Unreachable("unknown business type %q", s)
}

// ParseSizing converts a configuration string into a Sizing.
func ParseSizing(s string) (Sizing, error) {
	m := Sizing(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case SizeTotal, SizePeak:
		return m, nil
	}
	return "", validation.Unreachable("unknown sizing method %q", s)
}

// Validate fails with ErrUnreachableState when any enum is outside its set.
func (c Config) Validate() error {
	if _, ok := baseCosts[c.Type]; !ok {
		return validation.Unreachable("unknown station type %q", c.Type)
	}
	if _, ok := businessMultipliers[c.Business]; !ok {
		return validation.Unreachable("unknown business type %q", c.Business)
	}
	if c.Sizing != SizeTotal && c.Sizing != SizePeak {
		return validation.Unreachable("unknown sizing method %q", c.Sizing)
	}
	return nil
}

// Quote is the result of sizing and pricing a station.
type Quote struct {
	Cost      float64      `json:"cost"`
	Tier      Tier         `json:"tier"`
	DailyGGE  float64      `json:"dailyGGE"`
	AnnualGGE float64      `json:"annualGGE"`
	SizedFor  fleet.Counts `json:"sizedFor"`
}

// Estimate sizes the station for the fleet and returns its capital cost,
// rounded to whole dollars. The distribution holds per-year deployments and
// is only consulted for peak sizing; when it is empty the whole fleet is used.
func Estimate(cfg Config, params fleet.VehicleParameters, distribution []fleet.Counts) (Quote, error) {
	if err := cfg.Validate(); err != nil {
		return Quote{}, err
	}
	if err := checkTables(); err != nil {
		return Quote{}, err
	}

	counts := params.Counts()
	if cfg.Sizing == SizePeak && len(distribution) > 0 {
		counts = PeakCounts(distribution)
	}

	annual := AnnualGGE(params, counts)
	daily := annual / constants.DaysPerYear

	tier, err := Classify(daily)
	if err != nil {
		return Quote{}, err
	}

	base, ok := baseCosts[cfg.Type][tier]
	if !ok {
		return Quote{}, validation.Unreachable("no cost entry for %s station at tier %s", cfg.Type, tier)
	}

	return Quote{
		Cost:      mathutil.RoundWhole(base * businessMultipliers[cfg.Business]),
		Tier:      tier,
		DailyGGE:  daily,
		AnnualGGE: annual,
		SizedFor:  counts,
	}, nil
}

// AnnualGGE returns the yearly CNG throughput required by the given counts.
func AnnualGGE(params fleet.VehicleParameters, counts fleet.Counts) float64 {
	total := 0.0
	for _, class := range fleet.Classes {
		total += float64(counts.Get(class)) * params.Class(class).AnnualGGE(class)
	}
	return total
}

// PeakCounts returns, per class, the largest count deployed in a single year.
func PeakCounts(distribution []fleet.Counts) fleet.Counts {
	var peak fleet.Counts
	for _, year := range distribution {
		for _, class := range fleet.Classes {
			if n := year.Get(class); n > peak.Get(class) {
				peak.Set(class, n)
			}
		}
	}
	return peak
}

// AnnualTariff returns the yearly utility tariff for a non-turnkey station:
// the monthly rate of the business applied to the station cost, twelve times.
// Turnkey stations pay no tariff.
func AnnualTariff(cfg Config, cost float64) (float64, error) {
	if cfg.Turnkey {
		return 0, nil
	}
	rate, ok := monthlyTariffRates[cfg.Business]
	if !ok {
		return 0, validation.Unreachable("unknown business type %q", cfg.Business)
	}
	return mathutil.Round(mathutil.ApplyPercentage(cost, rate) * constants.MonthsPerYear), nil
}

// MonthlyTariffRate returns the monthly tariff percentage for a business.
func MonthlyTariffRate(b Business) (float64, error) {
	rate, ok := monthlyTariffRates[b]
	if !ok {
		return 0, validation.Unreachable("unknown business type %q", b)
	}
	return rate, nil
}
