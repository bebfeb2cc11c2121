package analysis

import (
	"encoding/json"
	"math"
)

// SignificanceLevel is the single alpha used everywhere a test is judged
// significant. Both per-city significance flags and the insight count use it.
const SignificanceLevel = 0.05

// WeatherMetric is the weather series correlated against egg prices
const WeatherMetric = "temperature"

// CorrelationResult holds the Pearson correlation between temperature and
// egg price for one city. Correlation and PValue are NaN when the
// correlation is not computable (zero variance in either series).
type CorrelationResult struct {
	City          string  `json:"city"`
	WeatherMetric string  `json:"weather_metric"`
	Correlation   float64 `json:"correlation"`
	PValue        float64 `json:"p_value"`
	SampleSize    int     `json:"sample_size"`
	IsSignificant bool    `json:"is_significant"`
}

// Computable reports whether the correlation is defined
func (c CorrelationResult) Computable() bool {
	return !math.IsNaN(c.Correlation)
}

// MarshalJSON encodes NaN correlation and p-value as null so degenerate
// results survive JSON serialization.
func (c CorrelationResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		City          string   `json:"city"`
		WeatherMetric string   `json:"weather_metric"`
		Correlation   *float64 `json:"correlation"`
		PValue        *float64 `json:"p_value"`
		SampleSize    int      `json:"sample_size"`
		IsSignificant bool     `json:"is_significant"`
		Strength      string   `json:"strength"`
	}

	return json.Marshal(alias{
		City:          c.City,
		WeatherMetric: c.WeatherMetric,
		Correlation:   nullable(c.Correlation),
		PValue:        nullable(c.PValue),
		SampleSize:    c.SampleSize,
		IsSignificant: c.IsSignificant,
		Strength:      FormatCorrelation(c.Correlation),
	})
}

// NormalityResult holds a Shapiro-Wilk test outcome
type NormalityResult struct {
	W        float64 `json:"w_statistic"`
	PValue   float64 `json:"p_value"`
	IsNormal bool    `json:"is_normal"`
}

// AnovaResult holds a one-way ANOVA outcome across city price groups
type AnovaResult struct {
	FStatistic   float64 `json:"f_statistic"`
	PValue       float64 `json:"p_value"`
	GroupsDiffer bool    `json:"groups_differ"`
}

// CityVolatility holds rolling price volatility metrics for one city
type CityVolatility struct {
	City           string  `json:"city"`
	AvgVolatility  float64 `json:"avg_volatility"`
	MaxVolatility  float64 `json:"max_volatility"`
	AvgPriceChange float64 `json:"avg_price_change"`
	MaxPriceChange float64 `json:"max_price_change"`
}

// ExtremeEvent tags a row whose temperature falls in the distribution tails
type ExtremeEvent struct {
	Date        string  `json:"date"`
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	EggPrice    float64 `json:"egg_price"`
	EventType   string  `json:"event_type"`
}

// nullable maps NaN to nil for JSON encoding
func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
