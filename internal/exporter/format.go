package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// formatFloat formats a float64 value for CSV output with the given number
// of decimal places. NaN becomes "N/A" so degenerate correlations export
// cleanly.
func formatFloat(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
