package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"dataweaver/internal/dataset"
	"dataweaver/internal/infrastructure"
)

// DataService runs the load-merge-filter pipeline over the two measurement
// sources and serves the joined rows, city lists, and descriptive summaries.
type DataService struct {
	store   *dataset.Store
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewDataService creates a new data service
func NewDataService(store *dataset.Store, metrics *infrastructure.Metrics, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// LoadRows executes the full pipeline for the query: both sources are loaded
// concurrently, inner-joined on (date, city, year, month), then restricted to
// the requested date range. An absent or empty source is a no_data outcome,
// not an error; only I/O failures and malformed source files surface as
// errors.
func (ds *DataService) LoadRows(ctx context.Context, query RowsQuery) (*RowsResult, error) {
	start := time.Now()

	if query.Start != nil && query.End != nil {
		if !dataset.ValidateDateRange(*query.Start, *query.End) {
			return nil, ErrInvalidDateRange
		}
	}

	var temps, prices []dataset.Measurement

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		temps, err = ds.loadSource(gctx, dataset.KindTemperature, query.Cities)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = ds.loadSource(gctx, dataset.KindEggPrice, query.Cities)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(temps) == 0 || len(prices) == 0 {
		ds.logger.Info("pipeline produced no data",
			slog.Int("temperature_records", len(temps)),
			slog.Int("price_records", len(prices)))
		ds.metrics.RecordPipeline(ctx, start, 0, string(StateNoData))
		return &RowsResult{State: StateNoData}, nil
	}

	rows := dataset.Merge(temps, prices)
	if len(rows) == 0 {
		ds.metrics.RecordPipeline(ctx, start, 0, string(StateNoOverlap))
		return &RowsResult{State: StateNoOverlap}, nil
	}

	if query.Start != nil || query.End != nil {
		lo, hi := rangeBounds(query)
		rows = dataset.FilterRange(rows, lo, hi)
		if len(rows) == 0 {
			ds.metrics.RecordPipeline(ctx, start, 0, string(StateEmptyRange))
			return &RowsResult{State: StateEmptyRange}, nil
		}
	}

	ds.logger.Debug("pipeline completed",
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", time.Since(start)))
	ds.metrics.RecordPipeline(ctx, start, len(rows), string(StateOK))

	return &RowsResult{State: StateOK, Rows: rows}, nil
}

// Cities returns the distinct cities present in the joined data set
func (ds *DataService) Cities(ctx context.Context) ([]string, error) {
	result, err := ds.LoadRows(ctx, RowsQuery{})
	if err != nil {
		return nil, err
	}
	return dataset.Cities(result.Rows), nil
}

// Summary computes descriptive statistics plus per-city month gaps for the
// query's row set.
func (ds *DataService) Summary(ctx context.Context, query RowsQuery) (*SummaryResult, error) {
	result, err := ds.LoadRows(ctx, query)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		State:   result.State,
		Summary: dataset.Summarize(result.Rows),
		Gaps:    dataset.DetectMissingMonths(result.Rows),
	}, nil
}

// Invalidate drops every cached load result so the next request re-reads
// the source files.
func (ds *DataService) Invalidate() {
	ds.store.Invalidate(dataset.KindTemperature)
	ds.store.Invalidate(dataset.KindEggPrice)
	ds.logger.Info("data cache invalidated")
}

// CacheStats exposes the underlying store's cache statistics
func (ds *DataService) CacheStats() map[string]interface{} {
	return ds.store.Stats()
}

// SourceModTime exposes the modification time of a source file
func (ds *DataService) SourceModTime(kind dataset.Kind) time.Time {
	return ds.store.SourceModTime(kind)
}

// loadSource loads one measurement kind, mapping an unavailable source to an
// empty result. Everything else propagates.
func (ds *DataService) loadSource(ctx context.Context, kind dataset.Kind, cities []string) ([]dataset.Measurement, error) {
	records, err := ds.store.Load(ctx, kind, cities)
	if err != nil {
		if errors.Is(err, dataset.ErrSourceUnavailable) {
			ds.logger.Warn("source unavailable, treating as empty",
				slog.String("kind", kind.String()))
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// rangeBounds fills open query bounds with extreme sentinels so FilterRange
// always receives a concrete interval.
func rangeBounds(query RowsQuery) (start, end time.Time) {
	start = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if query.Start != nil {
		start = *query.Start
	}
	if query.End != nil {
		end = *query.End
	}
	return start, end
}
