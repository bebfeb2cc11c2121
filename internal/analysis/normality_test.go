package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestShapiroWilk_InputContract(t *testing.T) {
	_, err := ShapiroWilk([]float64{1, 2})
	assert.Error(t, err, "fewer than three values is rejected")

	_, err = ShapiroWilk([]float64{5, 5, 5, 5})
	assert.Error(t, err, "zero variance is rejected")
}

func TestShapiroWilk_EquallySpacedTriple(t *testing.T) {
	// For n = 3 the W statistic of an equally spaced sample is exactly 1
	// and the exact distribution gives p = 1.
	result, err := ShapiroWilk([]float64{1, 2, 3})
	require.NoError(t, err)

	assert.InDelta(t, 1, result.W, 1e-9)
	assert.InDelta(t, 1, result.PValue, 1e-9)
	assert.True(t, result.IsNormal)
}

func TestShapiroWilk_NormalSampleAccepted(t *testing.T) {
	// Exact normal quantiles are as normal as a sample gets
	n := 20
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
	}

	result, err := ShapiroWilk(values)
	require.NoError(t, err)

	assert.Greater(t, result.W, 0.95)
	assert.LessOrEqual(t, result.W, 1.0)
	assert.True(t, result.IsNormal)
}

func TestShapiroWilk_OutliersRejected(t *testing.T) {
	values := []float64{1, 1.2, 1.1, 1.3, 0.9, 1.05, 1.15, 0.95, 1.25, 60, 85, 120}

	result, err := ShapiroWilk(values)
	require.NoError(t, err)

	assert.Less(t, result.PValue, SignificanceLevel)
	assert.False(t, result.IsNormal)
}

func TestShapiroWilk_Bounds(t *testing.T) {
	samples := [][]float64{
		{3, 1, 4, 1.5, 9, 2.6, 5.3},
		{-2, 0, 2, 4, 6, 8, 10, 12, 14, 16, 18},
		{0.1, 0.2, 0.4, 0.8, 1.6, 3.2},
	}

	for _, sample := range samples {
		result, err := ShapiroWilk(sample)
		require.NoError(t, err)
		assert.Greater(t, result.W, 0.0)
		assert.LessOrEqual(t, result.W, 1.0+1e-9)
		assert.GreaterOrEqual(t, result.PValue, 0.0)
		assert.LessOrEqual(t, result.PValue, 1.0)
	}
}
