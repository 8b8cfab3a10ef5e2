package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"filmeda/internal/config"
	apperrors "filmeda/internal/errors"
)

const (
	ServiceName = config.AppName
	MeterName   = "filmeda"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	EnableTracing  bool
	EnableMetrics  bool
	// TraceWriter receives one JSON document per finished span
	TraceWriter io.Writer
	// MetricsFile is where the Prometheus registry is written on Flush
	MetricsFile string
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	metricsFile string
	closers     []io.Closer
}

// NewOTelConfig derives the OpenTelemetry configuration from the telemetry
// settings, opening the trace file under the telemetry directory.
func NewOTelConfig(cfg config.TelemetryConfig, paths *config.Paths) (*OTelConfig, error) {
	oc := &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: config.AppVersion,
		EnableTracing:  cfg.Tracing,
		EnableMetrics:  cfg.Metrics,
	}

	if cfg.Tracing {
		f, err := os.Create(paths.GetTelemetryPath(cfg.TraceFile))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		oc.TraceWriter = f
	}
	if cfg.Metrics {
		oc.MetricsFile = paths.GetTelemetryPath(cfg.MetricsFile)
	}

	return oc, nil
}

// InitializeOTel initializes tracing and metrics for one batch run.
// Disabled signals fall back to no-op providers so callers never nil-check.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = &OTelConfig{ServiceName: ServiceName, ServiceVersion: config.AppVersion}
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("service.instance.id", generateInstanceID()),
	)

	providers := &OTelProviders{
		Logger:      logger,
		Tracer:      tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:       noop.NewMeterProvider().Meter(MeterName),
		metricsFile: cfg.MetricsFile,
	}

	if cfg.EnableTracing && cfg.TraceWriter != nil {
		if err := initializeTracing(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return providers, nil
}

// initializeTracing sets up span export as JSON lines
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.TraceWriter))
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}
	if c, ok := cfg.TraceWriter.(io.Closer); ok {
		providers.closers = append(providers.closers, c)
	}

	// Sections run one after another; a syncer keeps spans in execution order.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.Info("Tracing initialized", slog.String("exporter", "stdouttrace"))
	return nil
}

// initializeMetrics bridges OTel instruments onto a private Prometheus registry
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetMeterProvider(mp)

	providers.Logger.Info("Metrics initialized", slog.String("exporter", "prometheus"))
	return nil
}

// SectionMetrics holds the instruments recorded for every section run
type SectionMetrics struct {
	Runs      metric.Int64Counter
	Failures  metric.Int64Counter
	Duration  metric.Float64Histogram
	Rows      metric.Int64Histogram
	Artifacts metric.Int64Counter
}

// NewSectionMetrics creates the section instruments on meter
func NewSectionMetrics(meter metric.Meter) (*SectionMetrics, error) {
	runs, err := meter.Int64Counter(
		"filmeda_section_runs_total",
		metric.WithDescription("Total number of section executions"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"filmeda_section_failures_total",
		metric.WithDescription("Total number of failed section executions"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"filmeda_section_duration_seconds",
		metric.WithDescription("Section execution duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Histogram(
		"filmeda_section_aggregate_rows",
		metric.WithDescription("Rows in the aggregate table a section produced"),
	)
	if err != nil {
		return nil, err
	}

	artifacts, err := meter.Int64Counter(
		"filmeda_artifacts_written_total",
		metric.WithDescription("Total number of chart and table artifacts written"),
	)
	if err != nil {
		return nil, err
	}

	return &SectionMetrics{
		Runs:      runs,
		Failures:  failures,
		Duration:  duration,
		Rows:      rows,
		Artifacts: artifacts,
	}, nil
}

// RecordSection records one section execution
func (m *SectionMetrics) RecordSection(ctx context.Context, sectionID string, duration time.Duration, rows, artifacts int, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("section", sectionID),
		attribute.String("status", status),
	)

	m.Runs.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, duration.Seconds(), attrs)
	if err != nil {
		m.Failures.Add(ctx, 1, metric.WithAttributes(attribute.String("section", sectionID)))
		return
	}
	m.Rows.Record(ctx, int64(rows), attrs)
	m.Artifacts.Add(ctx, int64(artifacts), attrs)
}

// Flush writes the Prometheus registry in textfile-collector format
func (p *OTelProviders) Flush() error {
	if p.Registry == nil || p.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	p.Logger.Info("Metrics written", slog.String("path", p.metricsFile))
	return nil
}

// Shutdown flushes metrics and shuts down the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if err := p.Flush(); err != nil {
		errs = append(errs, err)
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError marks the span in ctx as failed. An analysis error also sets
// error.code so failed sections can be grouped by cause.
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}

	if code := apperrors.CodeOf(err); code != "" {
		span.SetAttributes(attribute.String("error.code", string(code)))
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the span in ctx in key order.
// Durations are recorded in seconds.
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		switch val := attributes[k].(type) {
		case string:
			kvs = append(kvs, attribute.String(k, val))
		case int:
			kvs = append(kvs, attribute.Int(k, val))
		case int64:
			kvs = append(kvs, attribute.Int64(k, val))
		case float64:
			kvs = append(kvs, attribute.Float64(k, val))
		case bool:
			kvs = append(kvs, attribute.Bool(k, val))
		case time.Duration:
			kvs = append(kvs, attribute.Float64(k, val.Seconds()))
		case []string:
			kvs = append(kvs, attribute.StringSlice(k, val))
		default:
			kvs = append(kvs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	span.SetAttributes(kvs...)
}
