package http

import (
	"context"
	"io"
	"log/slog"

	apierrors "dataweaver/internal/errors"
	"dataweaver/internal/services"
)

// stubDataService implements DataServiceInterface with function fields
type stubDataService struct {
	loadRows func(ctx context.Context, query services.RowsQuery) (*services.RowsResult, error)
	cities   func(ctx context.Context) ([]string, error)
	summary  func(ctx context.Context, query services.RowsQuery) (*services.SummaryResult, error)
}

func (s *stubDataService) LoadRows(ctx context.Context, query services.RowsQuery) (*services.RowsResult, error) {
	return s.loadRows(ctx, query)
}

func (s *stubDataService) Cities(ctx context.Context) ([]string, error) {
	return s.cities(ctx)
}

func (s *stubDataService) Summary(ctx context.Context, query services.RowsQuery) (*services.SummaryResult, error) {
	return s.summary(ctx, query)
}

// stubAnalysisService implements AnalysisServiceInterface with function fields
type stubAnalysisService struct {
	correlations func(ctx context.Context, query services.RowsQuery) (*services.CorrelationReport, error)
	insights     func(ctx context.Context, query services.RowsQuery) (*services.InsightsReport, error)
	tests        func(ctx context.Context, query services.RowsQuery) (*services.TestsReport, error)
	volatility   func(ctx context.Context, query services.RowsQuery, window int) (*services.VolatilityReport, error)
	extremes     func(ctx context.Context, query services.RowsQuery) (*services.ExtremesReport, error)
}

func (s *stubAnalysisService) Correlations(ctx context.Context, query services.RowsQuery) (*services.CorrelationReport, error) {
	return s.correlations(ctx, query)
}

func (s *stubAnalysisService) Insights(ctx context.Context, query services.RowsQuery) (*services.InsightsReport, error) {
	return s.insights(ctx, query)
}

func (s *stubAnalysisService) StatisticalTests(ctx context.Context, query services.RowsQuery) (*services.TestsReport, error) {
	return s.tests(ctx, query)
}

func (s *stubAnalysisService) Volatility(ctx context.Context, query services.RowsQuery, window int) (*services.VolatilityReport, error) {
	return s.volatility(ctx, query, window)
}

func (s *stubAnalysisService) Extremes(ctx context.Context, query services.RowsQuery) (*services.ExtremesReport, error) {
	return s.extremes(ctx, query)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger())
}
