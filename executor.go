// Package resilicore composes the policy packages — ratelimit,
// bulkhead, breaker, retrier, timeout — into a single Executor, the
// same functional-options composition a hand-rolled resilience
// executor uses to layer independently-testable patterns around one
// call.
package resilicore

import (
	"context"

	"github.com/corevane/resilicore/breaker"
	"github.com/corevane/resilicore/bulkhead"
	"github.com/corevane/resilicore/interval"
	"github.com/corevane/resilicore/metrics"
	"github.com/corevane/resilicore/observability"
	"github.com/corevane/resilicore/ratelimit"
	"github.com/corevane/resilicore/resilicoreconfig"
	"github.com/corevane/resilicore/retrier"
	"github.com/corevane/resilicore/timeout"
)

// Executor composes zero or more resilience patterns around an
// operation.
type Executor struct {
	name        string
	rateLimiter *ratelimit.Limiter
	bulkhead    *bulkhead.Bulkhead
	breaker     *breaker.CircuitBreaker
	retrier     *retrier.Retrier
	timeout     *timeout.Timeout
	middleware  *observability.Middleware
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// New creates an Executor from the given options.
func New(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRateLimiter installs a rate limiter as the outermost guard.
func WithRateLimiter(l *ratelimit.Limiter) ExecutorOption {
	return func(e *Executor) { e.rateLimiter = l }
}

// WithBulkhead installs a concurrency limiter.
func WithBulkhead(b *bulkhead.Bulkhead) ExecutorOption {
	return func(e *Executor) { e.bulkhead = b }
}

// WithCircuitBreaker installs a circuit breaker.
func WithCircuitBreaker(cb *breaker.CircuitBreaker) ExecutorOption {
	return func(e *Executor) { e.breaker = cb }
}

// WithRetry installs a retrier.
func WithRetry(r *retrier.Retrier) ExecutorOption {
	return func(e *Executor) { e.retrier = r }
}

// WithTimeout installs a per-attempt timeout as the innermost guard.
func WithTimeout(t *timeout.Timeout) ExecutorOption {
	return func(e *Executor) { e.timeout = t }
}

// WithConfig builds the rate limiter, bulkhead, circuit breaker,
// retrier, and timeout from cfg's per-package defaults — the output of
// resilicoreconfig.Load — instead of requiring each pattern to be
// constructed and wired in individually. name is used both as the
// executor's name (if not already set by WithObserver) and as the
// circuit breaker's name. Patterns installed this way can still be
// overridden by a WithRateLimiter/WithBulkhead/WithCircuitBreaker/
// WithRetry/WithTimeout option applied after it.
func WithConfig(name string, cfg resilicoreconfig.Config) ExecutorOption {
	return func(e *Executor) {
		if e.name == "" {
			e.name = name
		}

		e.rateLimiter = ratelimit.New(ratelimit.Config{
			Rate:  cfg.RateLimiter.Rate,
			Burst: cfg.RateLimiter.Burst,
		})

		e.bulkhead = bulkhead.New(bulkhead.Config{
			MaxConcurrent: cfg.Bulkhead.MaxConcurrent,
			MaxWait:       cfg.Bulkhead.MaxWait,
		})

		e.breaker = breaker.New(name, breaker.Config{
			FailureRateThreshold:      cfg.Breaker.FailureRateThreshold,
			SlowCallRateThreshold:     cfg.Breaker.SlowCallRateThreshold,
			SlowCallDurationThreshold: cfg.Breaker.SlowCallDurationThreshold,
			MinimumNumberOfCalls:      cfg.Breaker.MinimumNumberOfCalls,
			PermittedCallsInHalfOpen:  cfg.Breaker.PermittedCallsInHalfOpen,
			Window:                    metrics.NewCountBasedWindow(cfg.Breaker.WindowSize),
			WaitInterval:              interval.Fixed(cfg.Breaker.WaitInterval),
		})

		e.retrier = retrier.New(retrier.Config{
			MaxAttempts: cfg.Retrier.MaxAttempts,
			Delay:       interval.Biased(interval.Fixed(cfg.Retrier.InitialDelay)),
		})

		e.timeout = timeout.New(timeout.Config{Duration: cfg.Timeout.Duration})
	}
}

// WithObserver names the executor and instruments every call it makes
// with tracing, metrics, and structured logging.
func WithObserver(name string, obs observability.Observer) ExecutorOption {
	return func(e *Executor) {
		e.name = name
		if mw, err := observability.MiddlewareFromObserver(obs); err == nil {
			e.middleware = mw
		}
	}
}

// Execute runs op through every configured pattern, outside-in:
// rate limiter, bulkhead, circuit breaker, retry, timeout.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	execute := op

	if e.timeout != nil {
		inner := execute
		execute = func(ctx context.Context) error { return e.timeout.Execute(ctx, inner) }
	}
	if e.retrier != nil {
		inner := execute
		execute = func(ctx context.Context) error { return e.retrier.Execute(ctx, inner) }
	}
	if e.breaker != nil {
		inner := execute
		execute = func(ctx context.Context) error { return e.breaker.Execute(ctx, inner) }
	}
	if e.bulkhead != nil {
		inner := execute
		execute = func(ctx context.Context) error { return e.bulkhead.Execute(ctx, inner) }
	}
	if e.rateLimiter != nil {
		inner := execute
		execute = func(ctx context.Context) error { return e.rateLimiter.Execute(ctx, inner) }
	}

	if e.middleware != nil {
		execute = e.middleware.Wrap(observability.ComponentMeta{Component: "executor", Name: e.name}, execute)
	}

	return execute(ctx)
}
