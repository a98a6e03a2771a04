package finance

import (
	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"gonum.org/v1/gonum/floats"
)

// emissions returns the kg CO2 avoided by the operating fleet in one year and
// the kg the same miles would have emitted on conventional fuel.
func emissions(params fleet.VehicleParameters, operating fleet.Counts) (saved, baseline float64) {
	for _, class := range fleet.Classes {
		n := operating.Get(class)
		if n == 0 {
			continue
		}
		p := params.Class(class)
		miles := float64(n) * p.AnnualMiles
		conventional := miles * class.ConventionalEmissionFactor() / p.MPG
		cng := miles * constants.CNGEmissionFactor / p.CNGMPG(class)
		saved += conventional - cng
		baseline += conventional
	}
	return saved, baseline
}

func cumulative(series []float64) []float64 {
	return floats.CumSum(make([]float64, len(series)), series)
}
