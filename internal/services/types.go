package services

import (
	"time"

	"dataweaver/internal/analysis"
	"dataweaver/internal/dataset"
)

// PipelineState classifies the outcome of a load-merge-filter run. Every
// state is a normal outcome served with HTTP 200, never an error.
type PipelineState string

const (
	// StateOK means the pipeline produced at least one joined row
	StateOK PipelineState = "ok"
	// StateNoData means at least one source was absent or empty
	StateNoData PipelineState = "no_data"
	// StateNoOverlap means both sources loaded but shared no join keys
	StateNoOverlap PipelineState = "no_overlap"
	// StateEmptyRange means the join succeeded but the date filter left nothing
	StateEmptyRange PipelineState = "empty_range"
)

// RowsQuery selects the slice of the data set an operation runs over.
// A nil Cities slice means all cities; an empty non-nil slice means none.
// Nil Start/End leave the corresponding bound open.
type RowsQuery struct {
	Cities []string
	Start  *time.Time
	End    *time.Time
}

// RowsResult is the outcome of one pipeline run
type RowsResult struct {
	State PipelineState `json:"state"`
	Rows  []dataset.Row `json:"rows"`
}

// SummaryResult pairs descriptive statistics with the pipeline state they
// were computed under.
type SummaryResult struct {
	State   PipelineState      `json:"state"`
	Summary dataset.Summary    `json:"summary"`
	Gaps    []dataset.CityGaps `json:"data_gaps,omitempty"`
}

// CorrelationReport is the outcome of one correlation analysis run
type CorrelationReport struct {
	RunID              string                       `json:"run_id"`
	State              PipelineState                `json:"state"`
	OverallCorrelation *float64                     `json:"overall_correlation"`
	Cities             []analysis.CorrelationResult `json:"cities"`
	SampleSize         int                          `json:"sample_size"`
	GeneratedAt        time.Time                    `json:"generated_at"`
}

// InsightsReport carries the natural-language statements for a run
type InsightsReport struct {
	RunID    string        `json:"run_id"`
	State    PipelineState `json:"state"`
	Insights []string      `json:"insights"`
}

// TestsReport carries the formal statistical test results for a run
type TestsReport struct {
	RunID                string                    `json:"run_id"`
	State                PipelineState             `json:"state"`
	TemperatureNormality *analysis.NormalityResult `json:"temperature_normality,omitempty"`
	PriceNormality       *analysis.NormalityResult `json:"price_normality,omitempty"`
	PriceAnova           *analysis.AnovaResult     `json:"price_anova_by_city,omitempty"`
}

// VolatilityReport carries rolling price volatility per city
type VolatilityReport struct {
	RunID  string                    `json:"run_id"`
	State  PipelineState             `json:"state"`
	Window int                       `json:"window"`
	Cities []analysis.CityVolatility `json:"cities"`
}

// ExtremesReport carries the temperature tail events for a run
type ExtremesReport struct {
	RunID  string                  `json:"run_id"`
	State  PipelineState           `json:"state"`
	Events []analysis.ExtremeEvent `json:"events"`
}
