package deployment

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/mathutil"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
)

// Kind names a deployment strategy.
type Kind string

const (
	KindImmediate  Kind = "immediate"
	KindPhased     Kind = "phased"
	KindAggressive Kind = "aggressive"
	KindDeferred   Kind = "deferred"
	KindManual     Kind = "manual"
)

// Kinds lists every strategy kind.
var Kinds = []Kind{KindImmediate, KindPhased, KindAggressive, KindDeferred, KindManual}

// ParseKind converts a configuration string into a Kind. Unknown values are
// rejected; there is no fallback strategy.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", validation.Unreachable("unknown deployment strategy %q", s)
}

// Strategy spreads the fleet over the horizon. The set of implementations is
// closed: Immediate, Phased, Aggressive, Deferred and Manual.
type Strategy interface {
	Kind() Kind
	allocate(params fleet.VehicleParameters, horizon int) ([]fleet.Counts, error)
}

// StrategyFor returns the strategy for kind. manual rows are only used by
// KindManual.
func StrategyFor(kind Kind, manual []fleet.Counts) (Strategy, error) {
	switch kind {
	case KindImmediate:
		return Immediate{}, nil
	case KindPhased:
		return Phased{}, nil
	case KindAggressive:
		return Aggressive{}, nil
	case KindDeferred:
		return Deferred{}, nil
	case KindManual:
		return Manual{Years: manual}, nil
	}
	return nil, validation.Unreachable("unknown deployment strategy %q", kind)
}

// Immediate converts the whole fleet in the first year.
type Immediate struct{}

func (Immediate) Kind() Kind { return KindImmediate }

func (Immediate) allocate(params fleet.VehicleParameters, horizon int) ([]fleet.Counts, error) {
	return perClass(params, horizon, func(count, _ int) []int {
		return []int{count}
	}), nil
}

// Phased converts an even share every year.
type Phased struct{}

func (Phased) Kind() Kind { return KindPhased }

func (Phased) allocate(params fleet.VehicleParameters, horizon int) ([]fleet.Counts, error) {
	return perClass(params, horizon, phase), nil
}

// Aggressive converts half the fleet in the first year and phases the rest
// over the remaining years.
type Aggressive struct{}

func (Aggressive) Kind() Kind { return KindAggressive }

func (Aggressive) allocate(params fleet.VehicleParameters, horizon int) ([]fleet.Counts, error) {
	return perClass(params, horizon, func(count, years int) []int {
		if years == 1 {
			return []int{count}
		}
		first := min(mathutil.CeilHalf(count), count)
		return append([]int{first}, phase(count-first, years-1)...)
	}), nil
}

// Deferred phases half the fleet over all but the last year and converts the
// remainder in the final year.
type Deferred struct{}

func (Deferred) Kind() Kind { return KindDeferred }

func (Deferred) allocate(params fleet.VehicleParameters, horizon int) ([]fleet.Counts, error) {
	return perClass(params, horizon, func(count, years int) []int {
		if years == 1 {
			return []int{count}
		}
		early := min(mathutil.CeilHalf(count), count)
		return append(phase(early, years-1), count-early)
	}), nil
}

// Manual uses per-year counts entered by the user. Rows are taken as given;
// they need not add up to the configured fleet.
type Manual struct {
	Years []fleet.Counts
}

func (Manual) Kind() Kind { return KindManual }

func (m Manual) allocate(_ fleet.VehicleParameters, horizon int) ([]fleet.Counts, error) {
	if len(m.Years) > horizon {
		return nil, validation.Invalid("manual deployment has %d years, time horizon is %d", len(m.Years), horizon)
	}
	out := make([]fleet.Counts, len(m.Years))
	for i, year := range m.Years {
		if err := year.Validate(); err != nil {
			return nil, fmt.Errorf("manual deployment year %d: %w", i+1, err)
		}
		out[i] = year
	}
	return out, nil
}

// phase spreads count over years with ceiling division, clamped to what is
// left so the total is conserved.
func phase(count, years int) []int {
	out := make([]int, years)
	if years <= 0 {
		return out
	}
	per := mathutil.CeilDiv(count, years)
	remaining := count
	for i := range out {
		n := min(per, remaining)
		out[i] = n
		remaining -= n
	}
	return out
}

func perClass(params fleet.VehicleParameters, horizon int, split func(count, years int) []int) []fleet.Counts {
	out := make([]fleet.Counts, horizon)
	for _, class := range fleet.Classes {
		for year, n := range split(params.Class(class).Count, horizon) {
			if year >= horizon {
				break
			}
			out[year].Set(class, n)
		}
	}
	return out
}
