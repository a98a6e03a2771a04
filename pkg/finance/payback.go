package finance

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Payback is either achieved at a year within the horizon or never achieved.
// There is no numeric sentinel; branch on Achieved.
type Payback struct {
	achieved bool
	index    int
	years    float64
}

// NeverWithinHorizon is the payback of a projection whose cumulative savings
// never catch up with cumulative investment.
func NeverWithinHorizon() Payback {
	return Payback{}
}

// AchievedAt returns a payback reached in the year at index, after the
// given (fractional) number of years.
func AchievedAt(index int, years float64) Payback {
	return Payback{achieved: true, index: index, years: years}
}

// Achieved reports whether payback happens within the horizon.
func (p Payback) Achieved() bool {
	return p.achieved
}

// Years returns the fractional payback period.
func (p Payback) Years() (float64, bool) {
	return p.years, p.achieved
}

// YearIndex returns the index of the first year in which cumulative savings
// cover cumulative investment.
func (p Payback) YearIndex() (int, bool) {
	return p.index, p.achieved
}

func (p Payback) String() string {
	if !p.achieved {
		return "not within horizon"
	}
	return fmt.Sprintf("%.1f years", p.years)
}

type paybackJSON struct {
	Achieved  bool     `json:"achieved"`
	Years     *float64 `json:"years,omitempty"`
	YearIndex *int     `json:"yearIndex,omitempty"`
}

// MarshalJSON encodes the variant with its fields only when achieved.
func (p Payback) MarshalJSON() ([]byte, error) {
	out := paybackJSON{Achieved: p.achieved}
	if p.achieved {
		years, index := p.years, p.index
		out.Years = &years
		out.YearIndex = &index
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (p *Payback) UnmarshalJSON(data []byte) error {
	var in paybackJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Achieved {
		*p = NeverWithinHorizon()
		return nil
	}
	if in.Years == nil || in.YearIndex == nil {
		return fmt.Errorf("achieved payback requires years and yearIndex")
	}
	*p = AchievedAt(*in.YearIndex, *in.Years)
	return nil
}

// FindPayback locates the first year whose cumulative savings cover
// cumulative investment. A crossing at index i > 0 reports
// i - shortfall/(shortfall+surplus), using the prior year's shortfall and
// this year's surplus. Reported years never drop below one.
func FindPayback(cumulativeSavings, cumulativeInvestment []float64) Payback {
	n := min(len(cumulativeSavings), len(cumulativeInvestment))
	for i := 0; i < n; i++ {
		if cumulativeSavings[i] < cumulativeInvestment[i] {
			continue
		}
		if i == 0 {
			return AchievedAt(0, 1)
		}
		shortfall := cumulativeInvestment[i-1] - cumulativeSavings[i-1]
		surplus := cumulativeSavings[i] - cumulativeInvestment[i]
		years := float64(i) - shortfall/(shortfall+surplus)
		return AchievedAt(i, max(years, 1))
	}
	return NeverWithinHorizon()
}
