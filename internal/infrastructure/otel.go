package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "ratepulse"
	ServiceVersion = "1.0.0"
	MeterName      = "ratepulse"
)

// TelemetryConfig controls which observability pipelines are enabled.
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
	SampleRatio    float64
}

// TelemetryProviders holds the initialized OpenTelemetry providers and the
// Prometheus handler to mount on the metrics route.
type TelemetryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultTelemetryConfig returns the configuration used when none is supplied.
func DefaultTelemetryConfig() *TelemetryConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &TelemetryConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		EnableTracing:  true,
		EnableMetrics:  true,
		SampleRatio:    1.0,
	}
}

// InitializeTelemetry sets up tracing and metrics and registers the global
// providers and propagators.
func InitializeTelemetry(cfg *TelemetryConfig, logger *slog.Logger) (*TelemetryProviders, error) {
	if cfg == nil {
		cfg = DefaultTelemetryConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	logger.InfoContext(ctx, "initializing telemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.Bool("tracing", cfg.EnableTracing),
		slog.Bool("metrics", cfg.EnableMetrics))

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &TelemetryProviders{Logger: logger}

	if cfg.EnableTracing {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(MeterName)
	}

	if cfg.EnableMetrics {
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create metric exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// Shutdown flushes and stops the providers.
func (p *TelemetryProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("tracer provider shutdown: %w", err)
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("meter provider shutdown: %w", err)
		}
	}
	return firstErr
}

// ComparisonMetrics are the domain counters and histograms recorded by the
// comparison and insight services.
type ComparisonMetrics struct {
	ComparisonsTotal   metric.Int64Counter
	ComparisonDuration metric.Float64Histogram
	SnapshotsLoaded    metric.Int64Counter
	PriceParseFailures metric.Int64Counter
	ExportsTotal       metric.Int64Counter
}

// NewComparisonMetrics registers the service-level instruments on the meter.
func NewComparisonMetrics(meter metric.Meter) (*ComparisonMetrics, error) {
	if meter == nil {
		return nil, fmt.Errorf("meter is required")
	}

	comparisons, err := meter.Int64Counter("ratepulse_comparisons_total",
		metric.WithDescription("Total number of comparison requests processed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create comparisons counter: %w", err)
	}

	duration, err := meter.Float64Histogram("ratepulse_comparison_duration_seconds",
		metric.WithDescription("Time spent building a comparison table"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	snapshots, err := meter.Int64Counter("ratepulse_snapshots_loaded_total",
		metric.WithDescription("Competitor snapshot files loaded from disk"))
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot counter: %w", err)
	}

	parseFailures, err := meter.Int64Counter("ratepulse_price_parse_failures_total",
		metric.WithDescription("Raw price values that could not be normalized"))
	if err != nil {
		return nil, fmt.Errorf("failed to create parse failure counter: %w", err)
	}

	exports, err := meter.Int64Counter("ratepulse_exports_total",
		metric.WithDescription("Report exports generated"))
	if err != nil {
		return nil, fmt.Errorf("failed to create export counter: %w", err)
	}

	return &ComparisonMetrics{
		ComparisonsTotal:   comparisons,
		ComparisonDuration: duration,
		SnapshotsLoaded:    snapshots,
		PriceParseFailures: parseFailures,
		ExportsTotal:       exports,
	}, nil
}

// RecordComparison records one comparison request outcome.
func RecordComparison(ctx context.Context, m *ComparisonMetrics, duration time.Duration, rowCount int, success bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
		attribute.Int("rows", rowCount),
	)
	m.ComparisonsTotal.Add(ctx, 1, attrs)
	m.ComparisonDuration.Record(ctx, duration.Seconds(), attrs)
}

// TraceIDFromContext extracts the active trace ID, or "" when no span is
// recording.
func TraceIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// RecordSpanError marks the current span as failed.
func RecordSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
