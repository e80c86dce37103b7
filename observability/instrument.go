package observability

import (
	"context"

	"github.com/corevane/resilicore/breaker"
	"github.com/corevane/resilicore/bulkhead"
	"github.com/corevane/resilicore/retrier"
)

// InstrumentBreaker subscribes to cb's state-change events, logging
// every transition. Call once per breaker instance; the subscription
// lives for the breaker's lifetime.
func InstrumentBreaker(obs Observer, name string, cb *breaker.CircuitBreaker) {
	logger := obs.Logger().WithComponent(ComponentMeta{Component: "breaker", Name: name})

	cb.OnStateChange(func(ev breaker.StateChangeEvent) {
		logger.Info(context.Background(), "circuit breaker state change",
			Field{Key: "from", Value: ev.From.String()},
			Field{Key: "to", Value: ev.To.String()},
		)
	})
}

// RecordBreakerSnapshot publishes cb's current window snapshot as
// gauges. Callers poll this on whatever cadence suits them (a
// scheduled task, a health check tick); the breaker itself does not
// push snapshots.
func RecordBreakerSnapshot(ctx context.Context, obs Observer, name string, cb *breaker.CircuitBreaker) error {
	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return err
	}
	metrics.RecordWindowSnapshot(ctx, name, cb.Snapshot())
	return nil
}

// InstrumentRetrier subscribes to r's attempt events, logging each
// attempt and its outcome.
func InstrumentRetrier(obs Observer, name string, r *retrier.Retrier) {
	meta := ComponentMeta{Component: "retrier", Name: name}
	logger := obs.Logger().WithComponent(meta)

	r.OnAttempt(func(ev retrier.AttemptEvent) {
		fields := []Field{{Key: "attempt", Value: ev.Attempt}}
		if ev.Err != nil {
			fields = append(fields, Field{Key: "error", Value: ev.Err.Error()})
			if ev.Delay > 0 {
				fields = append(fields, Field{Key: "next_delay_ms", Value: float64(ev.Delay.Milliseconds())})
			}
			logger.Warn(context.Background(), "retry attempt failed", fields...)
			return
		}
		logger.Debug(context.Background(), "retry attempt succeeded", fields...)
	})
}

// RecordBulkheadSnapshot publishes b's current occupancy as log
// fields. Like RecordBreakerSnapshot, callers choose the poll cadence.
func RecordBulkheadSnapshot(ctx context.Context, obs Observer, name string, b *bulkhead.Bulkhead) {
	snap := b.Snapshot()
	obs.Logger().WithComponent(ComponentMeta{Component: "bulkhead", Name: name}).Debug(ctx, "bulkhead occupancy",
		Field{Key: "active", Value: snap.Active},
		Field{Key: "max_active", Value: snap.MaxActive},
		Field{Key: "available", Value: snap.Available},
		Field{Key: "rejected", Value: snap.Rejected},
	)
}
