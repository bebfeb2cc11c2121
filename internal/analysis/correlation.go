package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"dataweaver/internal/dataset"
)

// PerCityCorrelations computes the Pearson correlation between temperature
// and egg price for every city with at least two joined rows. Cities are
// walked in lexicographic order so results (and the "strongest" tie-break
// downstream) are deterministic. Cities with fewer than two rows are
// skipped; a zero-variance series yields a NaN correlation rather than an
// error.
func PerCityCorrelations(rows []dataset.Row) []CorrelationResult {
	byCity := make(map[string][]dataset.Row)
	for _, row := range rows {
		byCity[row.City] = append(byCity[row.City], row)
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var results []CorrelationResult
	for _, city := range cities {
		group := byCity[city]
		if len(group) < 2 {
			continue
		}

		temps := make([]float64, len(group))
		prices := make([]float64, len(group))
		for i, row := range group {
			temps[i] = row.Temperature
			prices[i] = row.EggPrice
		}

		r, p := PearsonTest(temps, prices)

		results = append(results, CorrelationResult{
			City:          city,
			WeatherMetric: WeatherMetric,
			Correlation:   r,
			PValue:        p,
			SampleSize:    len(group),
			IsSignificant: !math.IsNaN(p) && p < SignificanceLevel,
		})
	}

	return results
}

// OverallCorrelation computes the Pearson correlation over the full row set,
// ignoring city grouping. NaN when fewer than two rows or a series is
// constant.
func OverallCorrelation(rows []dataset.Row) float64 {
	if len(rows) < 2 {
		return math.NaN()
	}

	temps := make([]float64, len(rows))
	prices := make([]float64, len(rows))
	for i, row := range rows {
		temps[i] = row.Temperature
		prices[i] = row.EggPrice
	}

	return stat.Correlation(temps, prices, nil)
}

// PearsonTest returns the Pearson product-moment correlation coefficient r
// between xs and ys and the two-sided p-value for the null hypothesis r = 0
// under the t distribution with n-2 degrees of freedom. Both values are NaN
// when r is not computable (zero variance). With exactly two points r is
// ±1 by construction and the p-value is 1.
func PearsonTest(xs, ys []float64) (r, p float64) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return math.NaN(), math.NaN()
	}

	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return math.NaN(), math.NaN()
	}

	// Guard against floating point drift outside [-1, 1]
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	if n == 2 {
		return r, 1
	}

	if math.Abs(r) == 1 {
		return r, 0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))

	return r, p
}

// FormatCorrelation labels a correlation coefficient with strength and
// direction, e.g. "Strong Positive (0.823)".
func FormatCorrelation(r float64) string {
	if math.IsNaN(r) {
		return "Not computable"
	}

	abs := math.Abs(r)

	var strength string
	switch {
	case abs >= 0.7:
		strength = "Strong"
	case abs >= 0.5:
		strength = "Moderate"
	case abs >= 0.3:
		strength = "Weak"
	default:
		strength = "Very Weak"
	}

	direction := "Positive"
	if r < 0 {
		direction = "Negative"
	}

	return fmt.Sprintf("%s %s (%.3f)", strength, direction, r)
}
