package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ComponentMeta identifies the resilience component and operation an
// instrumented call belongs to.
type ComponentMeta struct {
	// Component names the policy package involved: "breaker",
	// "retrier", "ratelimit", "bulkhead", "timeout", or "executor" for
	// a composed call.
	Component string
	// Name identifies the specific instance, e.g. a circuit breaker or
	// registry entry name.
	Name string
	// Operation optionally names the guarded operation, for callers
	// composing several named calls behind one component instance.
	Operation string
	Tags      []string
}

// SpanName returns the deterministic span name for this call.
func (m ComponentMeta) SpanName() string {
	if m.Operation != "" {
		return "resilicore." + m.Component + "." + m.Operation
	}
	return "resilicore." + m.Component
}

// ID returns the fully qualified identifier for this call.
func (m ComponentMeta) ID() string {
	if m.Name == "" {
		return m.Component
	}
	return m.Component + "." + m.Name
}

// Tracer wraps OpenTelemetry tracing with component-specific span
// management.
type Tracer interface {
	StartSpan(ctx context.Context, meta ComponentMeta) (context.Context, trace.Span)
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta ComponentMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("resilicore.component", meta.Component),
		attribute.Bool("resilicore.error", false),
	}
	if meta.Name != "" {
		attrs = append(attrs, attribute.String("resilicore.name", meta.Name))
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("resilicore.operation", meta.Operation))
	}
	if len(meta.Tags) > 0 {
		attrs = append(attrs, attribute.StringSlice("resilicore.tags", meta.Tags))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("resilicore.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ComponentMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
