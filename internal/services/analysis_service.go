package services

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"dataweaver/internal/analysis"
	"dataweaver/internal/dataset"
	"dataweaver/internal/infrastructure"
)

// AnalysisService runs the statistical layer over the data service's joined
// rows: correlations, insights, formal tests, volatility, and extreme events.
// Every run gets a fresh run ID for log correlation.
type AnalysisService struct {
	data    *DataService
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(data *DataService, metrics *infrastructure.Metrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		data:    data,
		metrics: metrics,
		logger:  logger,
	}
}

// Correlations computes the per-city and overall Pearson correlations for
// the query's row set. A degenerate pipeline state comes back with no city
// results and a nil overall coefficient.
func (as *AnalysisService) Correlations(ctx context.Context, query RowsQuery) (*CorrelationReport, error) {
	runID := uuid.New().String()

	result, err := as.data.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &CorrelationReport{
		RunID:       runID,
		State:       result.State,
		SampleSize:  len(result.Rows),
		GeneratedAt: time.Now().UTC(),
	}

	if result.State != StateOK {
		return report, nil
	}

	report.Cities = analysis.PerCityCorrelations(result.Rows)
	if overall := analysis.OverallCorrelation(result.Rows); !math.IsNaN(overall) {
		report.OverallCorrelation = &overall
	}

	as.recordRun(ctx, runID, "correlations", result)
	return report, nil
}

// Insights produces the deterministic natural-language statements for the
// query's row set.
func (as *AnalysisService) Insights(ctx context.Context, query RowsQuery) (*InsightsReport, error) {
	runID := uuid.New().String()

	result, err := as.data.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &InsightsReport{RunID: runID, State: result.State}
	if result.State != StateOK {
		return report, nil
	}

	correlations := analysis.PerCityCorrelations(result.Rows)
	report.Insights = analysis.GenerateInsights(result.Rows, correlations)

	as.recordRun(ctx, runID, "insights", result)
	return report, nil
}

// StatisticalTests runs Shapiro-Wilk normality on both metric series and a
// one-way ANOVA of egg prices grouped by city. A test that cannot run on the
// selected data (too few observations, fewer than two city groups) is simply
// omitted from the report.
func (as *AnalysisService) StatisticalTests(ctx context.Context, query RowsQuery) (*TestsReport, error) {
	runID := uuid.New().String()

	result, err := as.data.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &TestsReport{RunID: runID, State: result.State}
	if result.State != StateOK {
		return report, nil
	}

	temps := make([]float64, len(result.Rows))
	prices := make([]float64, len(result.Rows))
	for i, row := range result.Rows {
		temps[i] = row.Temperature
		prices[i] = row.EggPrice
	}

	if normality, err := analysis.ShapiroWilk(temps); err == nil {
		report.TemperatureNormality = &normality
	} else {
		as.logger.Debug("temperature normality test skipped",
			slog.String("run_id", runID), slog.String("reason", err.Error()))
	}
	if normality, err := analysis.ShapiroWilk(prices); err == nil {
		report.PriceNormality = &normality
	} else {
		as.logger.Debug("price normality test skipped",
			slog.String("run_id", runID), slog.String("reason", err.Error()))
	}

	if anova, err := analysis.OneWayANOVA(priceGroups(result.Rows)); err == nil {
		report.PriceAnova = &anova
	} else {
		as.logger.Debug("price anova skipped",
			slog.String("run_id", runID), slog.String("reason", err.Error()))
	}

	as.recordRun(ctx, runID, "tests", result)
	return report, nil
}

// Volatility computes rolling egg price volatility per city. A window below
// two falls back to the default window.
func (as *AnalysisService) Volatility(ctx context.Context, query RowsQuery, window int) (*VolatilityReport, error) {
	runID := uuid.New().String()

	result, err := as.data.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	if window < 2 {
		window = analysis.DefaultVolatilityWindow
	}

	report := &VolatilityReport{RunID: runID, State: result.State, Window: window}
	if result.State != StateOK {
		return report, nil
	}

	report.Cities = analysis.PriceVolatility(result.Rows, window)

	as.recordRun(ctx, runID, "volatility", result)
	return report, nil
}

// Extremes tags rows whose temperature falls in the 5th or 95th percentile
// tails of the query's row set.
func (as *AnalysisService) Extremes(ctx context.Context, query RowsQuery) (*ExtremesReport, error) {
	runID := uuid.New().String()

	result, err := as.data.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &ExtremesReport{RunID: runID, State: result.State}
	if result.State != StateOK {
		return report, nil
	}

	report.Events = analysis.DetectExtremeEvents(result.Rows)

	as.recordRun(ctx, runID, "extremes", result)
	return report, nil
}

func (as *AnalysisService) recordRun(ctx context.Context, runID, kind string, result *RowsResult) {
	as.logger.Info("analysis run completed",
		slog.String("run_id", runID),
		slog.String("kind", kind),
		slog.String("state", string(result.State)),
		slog.Int("rows", len(result.Rows)))
	if as.metrics != nil {
		as.metrics.AnalysisRuns.Add(ctx, 1)
	}
}

// priceGroups splits egg prices by city in lexicographic order for ANOVA
func priceGroups(rows []dataset.Row) [][]float64 {
	byCity := make(map[string][]float64)
	for _, row := range rows {
		byCity[row.City] = append(byCity[row.City], row.EggPrice)
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	groups := make([][]float64, 0, len(cities))
	for _, city := range cities {
		groups = append(groups, byCity[city])
	}
	return groups
}
