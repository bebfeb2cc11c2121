package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneWayANOVA_InputContract(t *testing.T) {
	_, err := OneWayANOVA([][]float64{{1, 2, 3}})
	assert.Error(t, err, "one group is not an analysis of variance")

	_, err = OneWayANOVA([][]float64{{1, 2}, {}})
	assert.Error(t, err, "empty groups are rejected")

	_, err = OneWayANOVA([][]float64{{1}, {2}})
	assert.Error(t, err, "no within-group degrees of freedom left")
}

func TestOneWayANOVA_KnownValue(t *testing.T) {
	// ssBetween = 1.5, ssWithin = 4 over df (1, 4) gives F = 1.5 and
	// p near 0.288.
	result, err := OneWayANOVA([][]float64{{1, 2, 3}, {2, 3, 4}})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, result.FStatistic, 1e-9)
	assert.InDelta(t, 0.288, result.PValue, 0.005)
	assert.False(t, result.GroupsDiffer)
}

func TestOneWayANOVA_IdenticalConstantGroups(t *testing.T) {
	result, err := OneWayANOVA([][]float64{{5, 5}, {5, 5}})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(result.FStatistic))
	assert.True(t, math.IsNaN(result.PValue))
	assert.False(t, result.GroupsDiffer)
}

func TestOneWayANOVA_SeparatedConstantGroups(t *testing.T) {
	result, err := OneWayANOVA([][]float64{{1, 1}, {2, 2}})
	require.NoError(t, err)

	assert.True(t, math.IsInf(result.FStatistic, 1))
	assert.Zero(t, result.PValue)
	assert.True(t, result.GroupsDiffer)
}

func TestOneWayANOVA_ClearlySeparatedGroups(t *testing.T) {
	result, err := OneWayANOVA([][]float64{
		{1.0, 1.2, 0.9, 1.1},
		{9.8, 10.1, 10.0, 9.9},
		{20.2, 19.9, 20.0, 20.1},
	})
	require.NoError(t, err)

	assert.Greater(t, result.FStatistic, 100.0)
	assert.Less(t, result.PValue, SignificanceLevel)
	assert.True(t, result.GroupsDiffer)
}
