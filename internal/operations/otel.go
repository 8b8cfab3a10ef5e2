package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"filmeda/internal/infrastructure"
)

const (
	TracerName = "filmeda.operations"
)

// SectionTracer provides OpenTelemetry instrumentation for section runs
type SectionTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.SectionMetrics
}

// NewSectionTracer creates a tracer on the given providers. Nil providers
// give a tracer that records nothing.
func NewSectionTracer(providers *infrastructure.OTelProviders) (*SectionTracer, error) {
	if providers == nil {
		return &SectionTracer{tracer: tracenoop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	metrics, err := infrastructure.NewSectionMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create section metrics: %w", err)
	}

	return &SectionTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceRun creates the parent span of a run
func (st *SectionTracer) TraceRun(ctx context.Context, runID string, sectionCount int) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "filmeda.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.sections", sectionCount),
		),
	)
}

// TraceSection creates a span for one section
func (st *SectionTracer) TraceSection(ctx context.Context, section Section) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("section.%s", section.ID())
	return st.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("section.id", section.ID()),
			attribute.String("section.name", section.Name()),
		),
	)
}

// RecordSection writes the section result onto the span in ctx and records
// its metrics
func (st *SectionTracer) RecordSection(ctx context.Context, span trace.Span, state *SectionState) {
	rowsIn, rowsOut := 0, 0
	if state.Outcome != nil {
		rowsIn = state.Outcome.RowsIn
		rowsOut = state.Outcome.RowsOut
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"section.status":           string(state.Status),
		"section.duration_seconds": state.Duration(),
		"section.rows_in":          rowsIn,
		"section.rows_out":         rowsOut,
		"section.artifacts":        state.ArtifactCount(),
	})

	if state.Error != nil {
		infrastructure.RecordError(ctx, state.Error)
	} else {
		span.SetStatus(codes.Ok, "section completed")
	}

	st.metrics.RecordSection(ctx, state.ID, state.Duration(), rowsOut, state.ArtifactCount(), state.Error)
}
