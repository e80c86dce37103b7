package observability

import (
	"context"
	"errors"
	"time"

	"github.com/corevane/resilicore/breaker"
	"github.com/corevane/resilicore/bulkhead"
	"github.com/corevane/resilicore/ratelimit"
)

// isRejection reports whether err is one of the sentinel errors a
// policy package returns when it denies a call before running it,
// rather than a failure produced by running it.
func isRejection(err error) bool {
	return errors.Is(err, breaker.ErrOpen) ||
		errors.Is(err, bulkhead.ErrFull) ||
		errors.Is(err, ratelimit.ErrLimitExceeded)
}

// Middleware instruments a guarded operation with tracing, metrics,
// and logging.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// Wrap instruments op, returning a function suitable for passing
// straight into resilicore.Executor.Execute or any policy package's
// own Execute method.
func (m *Middleware) Wrap(meta ComponentMeta, op func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		err := op(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)

		if isRejection(err) {
			m.RecordRejection(ctx, meta, err)
			return err
		}
		m.metrics.RecordCall(ctx, meta, duration, err)

		compLogger := m.logger.WithComponent(meta)
		fields := []Field{{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000}}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			compLogger.Error(ctx, "guarded call failed", fields...)
		} else {
			compLogger.Debug(ctx, "guarded call completed", fields...)
		}

		return err
	}
}

// RecordRejection logs and records a call denied before it ran.
func (m *Middleware) RecordRejection(ctx context.Context, meta ComponentMeta, err error) {
	m.metrics.RecordRejection(ctx, meta)
	m.logger.WithComponent(meta).Warn(ctx, "guarded call rejected", Field{Key: "error", Value: err.Error()})
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
