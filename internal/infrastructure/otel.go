package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// ServiceName identifies this service in exported metrics
	ServiceName = "dataweaver"
	// MeterName is the instrumentation scope for application metrics
	MeterName = "dataweaver"
)

// Metrics holds the application's OpenTelemetry instruments plus the
// Prometheus scrape handler they are exported through.
type Metrics struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler

	AnalysisRuns     metric.Int64Counter
	CacheHits        metric.Int64Counter
	CacheMisses      metric.Int64Counter
	PipelineDuration metric.Float64Histogram
	RowsServed       metric.Int64Counter
}

// InitializeMetrics wires the OTel metrics pipeline through the Prometheus
// exporter and creates the application instruments.
func InitializeMetrics(version string, logger *slog.Logger) (*Metrics, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(MeterName)

	m := &Metrics{
		MeterProvider:  provider,
		Meter:          meter,
		PrometheusHTTP: promhttp.Handler(),
	}

	if m.AnalysisRuns, err = meter.Int64Counter("dataweaver.analysis.runs",
		metric.WithDescription("Completed correlation analysis runs")); err != nil {
		return nil, fmt.Errorf("failed to create analysis counter: %w", err)
	}
	if m.CacheHits, err = meter.Int64Counter("dataweaver.cache.hits",
		metric.WithDescription("Loader cache hits")); err != nil {
		return nil, fmt.Errorf("failed to create cache hit counter: %w", err)
	}
	if m.CacheMisses, err = meter.Int64Counter("dataweaver.cache.misses",
		metric.WithDescription("Loader cache misses")); err != nil {
		return nil, fmt.Errorf("failed to create cache miss counter: %w", err)
	}
	if m.PipelineDuration, err = meter.Float64Histogram("dataweaver.pipeline.duration",
		metric.WithDescription("Load-merge-filter pipeline duration"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("failed to create pipeline histogram: %w", err)
	}
	if m.RowsServed, err = meter.Int64Counter("dataweaver.rows.served",
		metric.WithDescription("Joined rows returned to clients")); err != nil {
		return nil, fmt.Errorf("failed to create rows counter: %w", err)
	}

	logger.Info("OpenTelemetry metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return m, nil
}

// RecordPipeline records one pipeline execution
func (m *Metrics) RecordPipeline(ctx context.Context, start time.Time, rows int, state string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("state", state))
	m.PipelineDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.RowsServed.Add(ctx, int64(rows), attrs)
}

// Shutdown flushes and stops the meter provider
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.MeterProvider == nil {
		return nil
	}
	return m.MeterProvider.Shutdown(ctx)
}
