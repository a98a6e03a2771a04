package finance

import (
	"math"
	"testing"

	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/station"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFleet() fleet.VehicleParameters {
	return fleet.VehicleParameters{
		Light:  fleet.ClassParameters{Count: 10, Cost: 15000, Lifespan: 7, MPG: 20, AnnualMiles: 15000},
		Medium: fleet.ClassParameters{Count: 5, Cost: 35000, Lifespan: 10, MPG: 10, AnnualMiles: 20000},
		Heavy:  fleet.ClassParameters{Count: 2, Cost: 60000, Lifespan: 12, MPG: 6, AnnualMiles: 40000},
	}
}

func testPrices() fleet.FuelPrices {
	return fleet.FuelPrices{Gasoline: 3.50, Diesel: 4.00, CNG: 2.00, AnnualIncrease: 0}
}

func turnkeyStation() station.Config {
	return station.Config{Type: station.FastFill, Business: station.AGLC, Turnkey: true, Sizing: station.SizeTotal}
}

func buildInput(t *testing.T, params fleet.VehicleParameters, horizon int, strategy deployment.Strategy) Input {
	t.Helper()
	distribution, err := deployment.Distribute(params, horizon, strategy)
	require.NoError(t, err)
	return Input{
		Vehicles:     params,
		Station:      turnkeyStation(),
		FuelPrices:   testPrices(),
		TimeHorizon:  horizon,
		Strategy:     strategy.Kind(),
		Distribution: distribution,
	}
}

func costOverride(v float64) *float64 {
	return &v
}

func TestProjectImmediateTurnkey(t *testing.T) {
	projector := NewProjector(zap.NewNop())
	results, err := projector.Project(buildInput(t, testFleet(), 5, deployment.Immediate{}))
	require.NoError(t, err)

	require.NotNil(t, results.Station)
	assert.Equal(t, 1200000.0, results.StationCost)
	assert.Equal(t, station.Small, results.Station.Tier)
	assert.Zero(t, results.AnnualTariff)
	assert.Equal(t, 445000.0, results.VehicleInvestment)
	assert.Equal(t, 1645000.0, results.TotalInvestment)

	for year := 0; year < 5; year++ {
		assert.Equal(t, 57797.0, results.YearlySavings[year])
		assert.InDelta(t, 52542.61, results.YearlyFuelSavings[year], 0.01)
		assert.InDelta(t, 5254.26, results.YearlyMaintenanceSavings[year], 0.01)
		assert.Equal(t, 1645000.0, results.CumulativeInvestment[year])
	}
	assert.Equal(t, []float64{57797, 115594, 173391, 231188, 288985}, results.CumulativeSavings)

	assert.False(t, results.Payback.Achieved())
	assert.InDelta(t, 288985.0/1645000.0*100, results.ROI, 1e-9)
	assert.Equal(t, 288985.0-1645000.0, results.NetCashFlow)
	assert.False(t, results.ZeroInvestment)
}

func TestProjectPaybackInterpolation(t *testing.T) {
	input := buildInput(t, testFleet(), 10, deployment.Immediate{})
	input.StationCost = costOverride(100000)

	results, err := NewProjector(nil).Project(input)
	require.NoError(t, err)

	assert.Nil(t, results.Station)
	assert.Equal(t, 545000.0, results.TotalInvestment)
	assert.Equal(t, 577970.0, results.FinalCumulativeSavings())

	years, ok := results.Payback.Years()
	require.True(t, ok)
	assert.InDelta(t, 8.5704, years, 1e-4)
	index, _ := results.Payback.YearIndex()
	assert.Equal(t, 9, index)

	assert.InDelta(t, 106.0495, results.ROI, 1e-4)
	assert.InDelta(t, 7.4972, results.AnnualRateOfReturn, 1e-4)
	assert.Equal(t, 32970.0, results.NetCashFlow)
}

func TestProjectEscalation(t *testing.T) {
	input := buildInput(t, testFleet(), 5, deployment.Immediate{})
	input.FuelPrices.AnnualIncrease = 3

	results, err := NewProjector(nil).Project(input)
	require.NoError(t, err)
	assert.Equal(t, []float64{57797, 59531, 61317, 63156, 65051}, results.YearlySavings)
}

func TestProjectNoEscalationKeepsPricesFlat(t *testing.T) {
	results, err := NewProjector(nil).Project(buildInput(t, testFleet(), 8, deployment.Immediate{}))
	require.NoError(t, err)
	for year := 1; year < 8; year++ {
		assert.Equal(t, results.YearlyFuelSavings[0], results.YearlyFuelSavings[year])
	}
}

func TestProjectNonTurnkeyTariff(t *testing.T) {
	input := buildInput(t, testFleet(), 5, deployment.Immediate{})
	input.Station = station.Config{Type: station.FastFill, Business: station.CGC, Turnkey: false, Sizing: station.SizeTotal}

	results, err := NewProjector(nil).Project(input)
	require.NoError(t, err)

	assert.Equal(t, 1260000.0, results.StationCost)
	expectedTariff := 1260000 * 0.016 * 12
	assert.InDelta(t, expectedTariff, results.AnnualTariff, 0.01)

	// never capitalized: year 0 holds vehicles plus one tariff only
	assert.InDelta(t, 445000+expectedTariff, results.CumulativeInvestment[0], 0.01)
	for year := 1; year < 5; year++ {
		step := results.CumulativeInvestment[year] - results.CumulativeInvestment[year-1]
		assert.InDelta(t, expectedTariff, step, 0.01)
	}
	assert.InDelta(t, 445000+5*expectedTariff, results.TotalInvestment, 0.01)
}

func TestProjectZeroFleet(t *testing.T) {
	params := testFleet()
	params.Light.Count, params.Medium.Count, params.Heavy.Count = 0, 0, 0

	results, err := NewProjector(nil).Project(buildInput(t, params, 4, deployment.Phased{}))
	require.NoError(t, err)
	assert.Equal(t, results.StationCost, results.TotalInvestment)
	for _, s := range results.YearlySavings {
		assert.Zero(t, s)
	}
	assert.False(t, results.Payback.Achieved())
	assert.Zero(t, results.CO2Reduction)

	input := buildInput(t, params, 4, deployment.Phased{})
	input.Station.Turnkey = false
	results, err = NewProjector(nil).Project(input)
	require.NoError(t, err)
	tariff := results.AnnualTariff
	assert.InDelta(t, 1200000*0.015*12, tariff, 0.01)
	for year, cumulative := range results.CumulativeInvestment {
		assert.InDelta(t, tariff*float64(year+1), cumulative, 0.01)
	}
}

func TestProjectZeroInvestmentIsDegenerate(t *testing.T) {
	params := testFleet()
	params.Light.Count, params.Medium.Count, params.Heavy.Count = 0, 0, 0
	input := buildInput(t, params, 3, deployment.Immediate{})
	input.StationCost = costOverride(0)

	results, err := NewProjector(nil).Project(input)
	require.NoError(t, err)
	assert.True(t, results.ZeroInvestment)
	assert.Zero(t, results.ROI)
	assert.Zero(t, results.AnnualRateOfReturn)
	assert.False(t, math.IsNaN(results.CostReduction))
}

func TestProjectEmissions(t *testing.T) {
	results, err := NewProjector(nil).Project(buildInput(t, testFleet(), 5, deployment.Immediate{}))
	require.NoError(t, err)

	perYear := 119455.1158
	for year := 0; year < 5; year++ {
		assert.InDelta(t, perYear, results.YearlyEmissionsSaved[year], 1e-3)
		assert.InDelta(t, perYear*float64(year+1), results.CumulativeEmissionsSaved[year], 1e-2)
	}
	assert.InDelta(t, 597275.58, results.TotalEmissionsSaved, 1e-2)
	assert.InDelta(t, 39.2704, results.CO2Reduction, 1e-4)
}

func TestProjectCostPerMile(t *testing.T) {
	input := buildInput(t, testFleet(), 3, deployment.Immediate{})
	input.FuelPrices.AnnualIncrease = 10

	results, err := NewProjector(nil).Project(input)
	require.NoError(t, err)
	assert.InDelta(t, 0.175, results.CostPerMileGasoline, 1e-9)
	assert.InDelta(t, 2.0/19.0, results.CostPerMileCNG, 1e-9)
	assert.InDelta(t, 39.8496, results.CostReduction, 1e-4)
}

func TestProjectRetirement(t *testing.T) {
	params := testFleet()
	params.Light.Lifespan = 2
	params.Heavy.Lifespan = 0

	input := buildInput(t, params, 5, deployment.Immediate{})
	kept, err := NewProjector(nil).Project(input)
	require.NoError(t, err)

	input.Options.RetireAtEndOfLife = true
	retired, err := NewProjector(nil).Project(input)
	require.NoError(t, err)

	for year := 0; year < 5; year++ {
		assert.Equal(t, 10, kept.OperatingVehicles[year].Light)
		assert.Equal(t, 2, retired.OperatingVehicles[year].Heavy)
	}
	assert.Equal(t, []int{10, 10, 0, 0, 0}, []int{
		retired.OperatingVehicles[0].Light,
		retired.OperatingVehicles[1].Light,
		retired.OperatingVehicles[2].Light,
		retired.OperatingVehicles[3].Light,
		retired.OperatingVehicles[4].Light,
	})
	assert.Less(t, retired.FinalCumulativeSavings(), kept.FinalCumulativeSavings())
}

func TestProjectProperties(t *testing.T) {
	strategies := []deployment.Strategy{
		deployment.Immediate{},
		deployment.Phased{},
		deployment.Aggressive{},
		deployment.Deferred{},
		deployment.Manual{Years: []fleet.Counts{{Light: 3}, {Medium: 5, Heavy: 2}, {Light: 7}}},
	}

	for _, strategy := range strategies {
		for _, horizon := range []int{3, 7, 15} {
			for _, turnkey := range []bool{true, false} {
				input := buildInput(t, testFleet(), horizon, strategy)
				input.Station.Turnkey = turnkey
				input.StationCost = costOverride(150000)

				results, err := NewProjector(nil).Project(input)
				require.NoError(t, err)

				assert.Len(t, results.YearlySavings, horizon)
				assert.Len(t, results.VehicleDistribution, horizon)
				for i := 1; i < horizon; i++ {
					assert.GreaterOrEqual(t, results.CumulativeSavings[i], results.CumulativeSavings[i-1])
					assert.GreaterOrEqual(t, results.CumulativeInvestment[i], results.CumulativeInvestment[i-1])
				}

				if index, ok := results.Payback.YearIndex(); ok {
					assert.GreaterOrEqual(t, results.CumulativeSavings[index], results.CumulativeInvestment[index])
					if index > 0 {
						assert.Less(t, results.CumulativeSavings[index-1], results.CumulativeInvestment[index-1])
					}
					years, _ := results.Payback.Years()
					assert.GreaterOrEqual(t, years, 1.0)
					assert.LessOrEqual(t, years, math.Max(float64(index), 1))
				}
			}
		}
	}
}

func TestProjectRejectsInvalidInput(t *testing.T) {
	base := buildInput(t, testFleet(), 5, deployment.Phased{})

	tests := []struct {
		name   string
		mutate func(*Input)
		kind   error
	}{
		{"zero horizon", func(in *Input) { in.TimeHorizon = 0 }, validation.ErrInvalidConfiguration},
		{"short distribution", func(in *Input) { in.Distribution = in.Distribution[:3] }, validation.ErrInvalidConfiguration},
		{"zero mpg", func(in *Input) { in.Vehicles.Medium.MPG = 0 }, validation.ErrInvalidConfiguration},
		{"negative price", func(in *Input) { in.FuelPrices.Diesel = -1 }, validation.ErrInvalidConfiguration},
		{"negative station cost", func(in *Input) { in.StationCost = costOverride(-1) }, validation.ErrInvalidConfiguration},
		{"unknown strategy", func(in *Input) { in.Strategy = "random" }, validation.ErrUnreachableState},
		{"unknown station", func(in *Input) { in.Station.Type = "slow" }, validation.ErrUnreachableState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			input.Distribution = append([]deployment.Year(nil), base.Distribution...)
			tt.mutate(&input)
			_, err := NewProjector(nil).Project(input)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}
