package deployment

import (
	"testing"

	"github.com/iwvelando/fleet-forecast/pkg/fleet"
	"github.com/iwvelando/fleet-forecast/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lightCost  = 15000.0
	mediumCost = 35000.0
	heavyCost  = 60000.0
)

func exampleFleet(light, medium, heavy int) fleet.VehicleParameters {
	return fleet.VehicleParameters{
		Light:  fleet.ClassParameters{Count: light, Cost: lightCost, Lifespan: 7, MPG: 20, AnnualMiles: 15000},
		Medium: fleet.ClassParameters{Count: medium, Cost: mediumCost, Lifespan: 10, MPG: 10, AnnualMiles: 20000},
		Heavy:  fleet.ClassParameters{Count: heavy, Cost: heavyCost, Lifespan: 12, MPG: 6, AnnualMiles: 40000},
	}
}

func countsOf(years []Year) []fleet.Counts {
	return Counts(years)
}

func TestDistributeImmediate(t *testing.T) {
	years, err := Distribute(exampleFleet(10, 5, 2), 5, Immediate{})
	require.NoError(t, err)
	require.Len(t, years, 5)

	assert.Equal(t, Year{Light: 10, Medium: 5, Heavy: 2, Investment: 10*lightCost + 5*mediumCost + 2*heavyCost}, years[0])
	for _, y := range years[1:] {
		assert.Equal(t, Year{}, y)
	}
}

func TestDistributePhased(t *testing.T) {
	years, err := Distribute(exampleFleet(10, 5, 2), 5, Phased{})
	require.NoError(t, err)

	expected := []fleet.Counts{
		{Light: 2, Medium: 1, Heavy: 1},
		{Light: 2, Medium: 1, Heavy: 1},
		{Light: 2, Medium: 1, Heavy: 0},
		{Light: 2, Medium: 1, Heavy: 0},
		{Light: 2, Medium: 1, Heavy: 0},
	}
	assert.Equal(t, expected, countsOf(years))
	assert.Equal(t, 2*lightCost+mediumCost+heavyCost, years[0].Investment)
	assert.Equal(t, 2*lightCost+mediumCost, years[4].Investment)
}

func TestDistributePhasedRemainder(t *testing.T) {
	// ceil(11/3) = 4 per year, the last year absorbs what is left
	years, err := Distribute(exampleFleet(11, 0, 0), 3, Phased{})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 3}, []int{years[0].Light, years[1].Light, years[2].Light})
}

func TestDistributeAggressive(t *testing.T) {
	years, err := Distribute(exampleFleet(10, 5, 2), 5, Aggressive{})
	require.NoError(t, err)

	expected := []fleet.Counts{
		{Light: 5, Medium: 3, Heavy: 1},
		{Light: 2, Medium: 1, Heavy: 1},
		{Light: 2, Medium: 1, Heavy: 0},
		{Light: 1, Medium: 0, Heavy: 0},
		{Light: 0, Medium: 0, Heavy: 0},
	}
	assert.Equal(t, expected, countsOf(years))
}

func TestDistributeDeferred(t *testing.T) {
	years, err := Distribute(exampleFleet(10, 5, 2), 5, Deferred{})
	require.NoError(t, err)

	expected := []fleet.Counts{
		{Light: 2, Medium: 1, Heavy: 1},
		{Light: 2, Medium: 1, Heavy: 0},
		{Light: 1, Medium: 1, Heavy: 0},
		{Light: 0, Medium: 0, Heavy: 0},
		{Light: 5, Medium: 2, Heavy: 1},
	}
	assert.Equal(t, expected, countsOf(years))
}

func TestDistributeSingleYearHorizon(t *testing.T) {
	for _, strategy := range []Strategy{Immediate{}, Phased{}, Aggressive{}, Deferred{}} {
		t.Run(string(strategy.Kind()), func(t *testing.T) {
			years, err := Distribute(exampleFleet(7, 3, 1), 1, strategy)
			require.NoError(t, err)
			require.Len(t, years, 1)
			assert.Equal(t, fleet.Counts{Light: 7, Medium: 3, Heavy: 1}, years[0].Counts())
		})
	}
}

func TestDistributeConservation(t *testing.T) {
	fleets := []fleet.VehicleParameters{
		exampleFleet(10, 5, 2),
		exampleFleet(0, 0, 0),
		exampleFleet(1, 1, 1),
		exampleFleet(97, 41, 13),
		exampleFleet(3, 0, 250),
	}
	horizons := []int{1, 2, 3, 5, 7, 10, 20, 30}
	strategies := []Strategy{Immediate{}, Phased{}, Aggressive{}, Deferred{}}

	for _, params := range fleets {
		for _, horizon := range horizons {
			for _, strategy := range strategies {
				years, err := Distribute(params, horizon, strategy)
				require.NoError(t, err)
				assert.Len(t, years, horizon)
				assert.Equal(t, params.Counts(), Totals(years),
					"strategy %s horizon %d fleet %+v", strategy.Kind(), horizon, params.Counts())

				invested := 0.0
				for _, y := range years {
					assert.GreaterOrEqual(t, y.Light, 0)
					assert.GreaterOrEqual(t, y.Medium, 0)
					assert.GreaterOrEqual(t, y.Heavy, 0)
					invested += y.Investment
				}
				assert.InDelta(t, params.Investment(params.Counts()), invested, 1e-6)
			}
		}
	}
}

func TestDistributeManual(t *testing.T) {
	manual := Manual{Years: []fleet.Counts{
		{Light: 4, Medium: 0, Heavy: 1},
		{Light: 0, Medium: 2, Heavy: 0},
	}}

	years, err := Distribute(exampleFleet(10, 5, 2), 4, manual)
	require.NoError(t, err)
	require.Len(t, years, 4)

	assert.Equal(t, Year{Light: 4, Heavy: 1, Investment: 4*lightCost + heavyCost}, years[0])
	assert.Equal(t, Year{Medium: 2, Investment: 2 * mediumCost}, years[1])
	assert.Equal(t, Year{}, years[2])
	assert.Equal(t, Year{}, years[3])
	assert.Equal(t, fleet.Counts{Light: 4, Medium: 2, Heavy: 1}, Totals(years))
}

func TestDistributeManualRejects(t *testing.T) {
	tooLong := Manual{Years: make([]fleet.Counts, 6)}
	_, err := Distribute(exampleFleet(1, 1, 1), 5, tooLong)
	assert.ErrorIs(t, err, validation.ErrInvalidConfiguration)

	negative := Manual{Years: []fleet.Counts{{Light: -1}}}
	_, err = Distribute(exampleFleet(1, 1, 1), 5, negative)
	assert.ErrorIs(t, err, validation.ErrInvalidConfiguration)
}

func TestDistributeInvalidInputs(t *testing.T) {
	_, err := Distribute(exampleFleet(1, 1, 1), 0, Phased{})
	assert.ErrorIs(t, err, validation.ErrInvalidConfiguration)

	_, err = Distribute(exampleFleet(1, 1, 1), -3, Immediate{})
	assert.ErrorIs(t, err, validation.ErrInvalidConfiguration)

	_, err = Distribute(exampleFleet(-1, 1, 1), 5, Phased{})
	assert.ErrorIs(t, err, validation.ErrInvalidConfiguration)

	_, err = Distribute(exampleFleet(1, 1, 1), 5, nil)
	assert.ErrorIs(t, err, validation.ErrUnreachableState)
}

func TestParseKindAndStrategyFor(t *testing.T) {
	for _, kind := range Kinds {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		strategy, err := StrategyFor(parsed, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, strategy.Kind())
	}

	parsed, err := ParseKind(" Phased ")
	require.NoError(t, err)
	assert.Equal(t, KindPhased, parsed)

	_, err = ParseKind("random")
	assert.ErrorIs(t, err, validation.ErrUnreachableState)

	_, err = StrategyFor(Kind("linear"), nil)
	assert.ErrorIs(t, err, validation.ErrUnreachableState)
}
