package http

import (
	"context"

	"dataweaver/internal/services"
)

// DataServiceInterface defines the data operations the handlers depend on
type DataServiceInterface interface {
	LoadRows(ctx context.Context, query services.RowsQuery) (*services.RowsResult, error)
	Cities(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, query services.RowsQuery) (*services.SummaryResult, error)
}

// AnalysisServiceInterface defines the analysis operations the handlers
// depend on
type AnalysisServiceInterface interface {
	Correlations(ctx context.Context, query services.RowsQuery) (*services.CorrelationReport, error)
	Insights(ctx context.Context, query services.RowsQuery) (*services.InsightsReport, error)
	StatisticalTests(ctx context.Context, query services.RowsQuery) (*services.TestsReport, error)
	Volatility(ctx context.Context, query services.RowsQuery, window int) (*services.VolatilityReport, error)
	Extremes(ctx context.Context, query services.RowsQuery) (*services.ExtremesReport, error)
}

// HealthServiceInterface defines the health check operation
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
