package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceVolatility(t *testing.T) {
	rows := append(
		rowsFor("Chennai", []float64{25, 26, 27, 28, 29, 30}, []float64{4, 6, 5, 8, 7, 10}),
		rowsFor("Delhi", []float64{10, 11, 12, 13, 14, 15}, []float64{5, 5, 5, 5, 5, 5})...)
	// Too few rows for the window
	rows = append(rows, rowsFor("Pune", []float64{20, 21}, []float64{6, 7})...)

	results := PriceVolatility(rows, 3)
	require.Len(t, results, 2, "cities below the window are skipped")

	assert.Equal(t, "Chennai", results[0].City)
	assert.Equal(t, "Delhi", results[1].City)

	assert.Greater(t, results[0].AvgVolatility, 0.0)
	assert.GreaterOrEqual(t, results[0].MaxVolatility, results[0].AvgVolatility)
	assert.Greater(t, results[0].MaxPriceChange, 0.0)

	assert.Zero(t, results[1].AvgVolatility, "constant prices have no volatility")
	assert.Zero(t, results[1].MaxPriceChange)
}

func TestPriceVolatility_WindowFallback(t *testing.T) {
	rows := rowsFor("Chennai", []float64{25, 26, 27, 28}, []float64{4, 6, 5, 8})

	assert.Equal(t, PriceVolatility(rows, 0), PriceVolatility(rows, DefaultVolatilityWindow))
}

func TestDetectExtremeEvents(t *testing.T) {
	temps := make([]float64, 20)
	prices := make([]float64, 20)
	for i := range temps {
		temps[i] = float64(i + 1)
		prices[i] = 5
	}
	rows := rowsFor("Chennai", temps, prices)

	events := DetectExtremeEvents(rows)
	require.NotEmpty(t, events)

	var heat, cold int
	for _, event := range events {
		switch event.EventType {
		case "Extreme Heat":
			heat++
			assert.GreaterOrEqual(t, event.Temperature, 19.0)
		case "Extreme Cold":
			cold++
			assert.LessOrEqual(t, event.Temperature, 2.0)
		default:
			t.Fatalf("unexpected event type %q", event.EventType)
		}
	}
	assert.NotZero(t, heat)
	assert.NotZero(t, cold)
}

func TestDetectExtremeEvents_Empty(t *testing.T) {
	assert.Nil(t, DetectExtremeEvents(nil))
}
