package analysis

import (
	"fmt"
	"math"

	"dataweaver/internal/dataset"
)

// GenerateInsights produces the human-readable summary statements for an
// analysis run. Deterministic given its inputs, in fixed order: the overall
// correlation statement always comes first; when per-city correlations
// exist, the strongest relationship, the significant count, and the metric
// spreads follow, for exactly four statements.
func GenerateInsights(rows []dataset.Row, correlations []CorrelationResult) []string {
	insights := []string{overallInsight(rows)}

	if len(correlations) == 0 {
		return insights
	}

	if strongest, ok := strongestCorrelation(correlations); ok {
		direction := "positive"
		if strongest.Correlation < 0 {
			direction = "negative"
		}
		insights = append(insights, fmt.Sprintf(
			"Strongest correlation found in %s: %s relationship (%.3f)",
			strongest.City, direction, strongest.Correlation))
	} else {
		insights = append(insights, "No city has a computable correlation for the selected data")
	}

	significant := 0
	for _, c := range correlations {
		if c.IsSignificant {
			significant++
		}
	}
	insights = append(insights, fmt.Sprintf(
		"%d out of %d city correlations are statistically significant (p < %.2f)",
		significant, len(correlations), SignificanceLevel))

	tempSpread, priceSpread := spreads(rows)
	insights = append(insights, fmt.Sprintf(
		"Temperature varies by %.1f°C while egg prices vary by ₹%.2f across the dataset",
		tempSpread, priceSpread))

	return insights
}

// overallInsight phrases the whole-dataset correlation
func overallInsight(rows []dataset.Row) string {
	r := OverallCorrelation(rows)
	if math.IsNaN(r) {
		return "Correlation between temperature and egg prices is not computable for the selected data"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	abs := math.Abs(r)
	switch {
	case abs > 0.5:
		return fmt.Sprintf("Strong %s correlation (%.3f) between temperature and egg prices across all cities", direction, r)
	case abs > 0.3:
		return fmt.Sprintf("Moderate %s correlation (%.3f) between temperature and egg prices", direction, r)
	default:
		return fmt.Sprintf("Weak correlation (%.3f) between temperature and egg prices overall", r)
	}
}

// strongestCorrelation picks the computable result with the largest |r|.
// Input order is the engine's lexicographic city order, and only a strictly
// larger |r| displaces the current best, so ties keep the first city.
func strongestCorrelation(correlations []CorrelationResult) (CorrelationResult, bool) {
	var best CorrelationResult
	found := false
	for _, c := range correlations {
		if !c.Computable() {
			continue
		}
		if !found || math.Abs(c.Correlation) > math.Abs(best.Correlation) {
			best = c
			found = true
		}
	}
	return best, found
}

func spreads(rows []dataset.Row) (tempSpread, priceSpread float64) {
	if len(rows) == 0 {
		return 0, 0
	}

	minTemp, maxTemp := rows[0].Temperature, rows[0].Temperature
	minPrice, maxPrice := rows[0].EggPrice, rows[0].EggPrice
	for _, row := range rows {
		minTemp = math.Min(minTemp, row.Temperature)
		maxTemp = math.Max(maxTemp, row.Temperature)
		minPrice = math.Min(minPrice, row.EggPrice)
		maxPrice = math.Max(maxPrice, row.EggPrice)
	}

	return maxTemp - minTemp, maxPrice - minPrice
}
