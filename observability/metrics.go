package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	corewindow "github.com/corevane/resilicore/metrics"
)

// Metrics records execution metrics for resilience components.
type Metrics interface {
	// RecordCall records one guarded call's duration and outcome.
	RecordCall(ctx context.Context, meta ComponentMeta, duration time.Duration, err error)
	// RecordRejection records a call denied before it ran (breaker
	// open, bulkhead full, rate limit exceeded).
	RecordRejection(ctx context.Context, meta ComponentMeta)
	// RecordWindowSnapshot publishes a sliding-window snapshot's rates
	// as gauges, for a circuit breaker's backing window.
	RecordWindowSnapshot(ctx context.Context, name string, snap corewindow.Snapshot)
}

type metricsImpl struct {
	callTotal      metric.Int64Counter
	callErrors     metric.Int64Counter
	callDuration   metric.Float64Histogram
	rejectionTotal metric.Int64Counter
	failureRate    metric.Float64Gauge
	slowCallRate   metric.Float64Gauge
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	callTotal, err := meter.Int64Counter(
		"resilicore.call.total",
		metric.WithDescription("Total number of guarded calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter(
		"resilicore.call.errors",
		metric.WithDescription("Total number of guarded call failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		"resilicore.call.duration_ms",
		metric.WithDescription("Guarded call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rejectionTotal, err := meter.Int64Counter(
		"resilicore.call.rejections",
		metric.WithDescription("Total number of calls denied before execution"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	failureRate, err := meter.Float64Gauge(
		"resilicore.window.failure_rate_pct",
		metric.WithDescription("Sliding window failure rate as observed by a circuit breaker"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, err
	}

	slowCallRate, err := meter.Float64Gauge(
		"resilicore.window.slow_call_rate_pct",
		metric.WithDescription("Sliding window slow-call rate as observed by a circuit breaker"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		callTotal:      callTotal,
		callErrors:     callErrors,
		callDuration:   callDuration,
		rejectionTotal: rejectionTotal,
		failureRate:    failureRate,
		slowCallRate:   slowCallRate,
	}, nil
}

func componentAttrs(meta ComponentMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("resilicore.component", meta.Component)}
	if meta.Name != "" {
		attrs = append(attrs, attribute.String("resilicore.name", meta.Name))
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("resilicore.operation", meta.Operation))
	}
	return attrs
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta ComponentMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(componentAttrs(meta)...)

	m.callTotal.Add(ctx, 1, opt)
	if err != nil {
		m.callErrors.Add(ctx, 1, opt)
	}
	m.callDuration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordRejection(ctx context.Context, meta ComponentMeta) {
	m.rejectionTotal.Add(ctx, 1, metric.WithAttributes(componentAttrs(meta)...))
}

func (m *metricsImpl) RecordWindowSnapshot(ctx context.Context, name string, snap corewindow.Snapshot) {
	opt := metric.WithAttributes(attribute.String("resilicore.name", name))
	m.failureRate.Record(ctx, snap.FailureRatePct, opt)
	m.slowCallRate.Record(ctx, snap.SlowCallRatePct, opt)
}

type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta ComponentMeta, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordRejection(ctx context.Context, meta ComponentMeta)                       {}
func (m *noopMetrics) RecordWindowSnapshot(ctx context.Context, name string, snap corewindow.Snapshot) {
}
