// Package retrier retries a failing operation, computing the delay
// between attempts from an interval.Func/interval.BiasedFunc instead
// of an inlined backoff calculation, and publishing each attempt
// through an event.Processor instead of a single callback field.
package retrier

import (
	"context"
	"time"

	"github.com/corevane/resilicore/event"
	"github.com/corevane/resilicore/interval"
)

// Config configures a Retrier.
type Config struct {
	// MaxAttempts is the maximum number of attempts, including the
	// first. Default: 3.
	MaxAttempts int

	// Delay computes the wait before the next attempt from the attempt
	// number just completed and the Result it produced. Default:
	// interval.Biased(interval.Fixed(interval.DefaultInitialInterval)).
	Delay interval.BiasedFunc

	// RetryIf decides whether err should trigger another attempt.
	// Default: any non-nil error.
	RetryIf func(err error) bool
}

func (c *Config) applyDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Delay == nil {
		c.Delay = interval.Biased(interval.Fixed(interval.DefaultInitialInterval))
	}
	if c.RetryIf == nil {
		c.RetryIf = func(err error) bool { return err != nil }
	}
}

// AttemptEvent is published after every attempt, successful or not.
type AttemptEvent struct {
	Attempt int
	Err     error
	// Delay is the wait before the next attempt, or zero if this was
	// the last attempt made.
	Delay time.Duration
}

func (AttemptEvent) TypeName() string { return "retrier.attempt" }

// Retrier retries an operation according to Config.
type Retrier struct {
	config Config
	events *event.Processor[AttemptEvent]
}

// New creates a Retrier.
func New(config Config) *Retrier {
	config.applyDefaults()
	return &Retrier{config: config, events: event.NewProcessor[AttemptEvent]()}
}

// OnAttempt subscribes c to every future AttemptEvent.
func (r *Retrier) OnAttempt(c event.Consumer[AttemptEvent]) {
	r.events.OnEvent(c)
}

// Execute runs op, retrying per Config until it succeeds, RetryIf
// rejects the error, MaxAttempts is exhausted, or ctx is cancelled.
func (r *Retrier) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			r.events.Process(AttemptEvent{Attempt: attempt})
			return nil
		}

		lastErr = err

		if !r.config.RetryIf(err) {
			r.events.Process(AttemptEvent{Attempt: attempt, Err: err})
			return err
		}
		if attempt >= r.config.MaxAttempts {
			r.events.Process(AttemptEvent{Attempt: attempt, Err: err})
			break
		}

		delay, derr := r.config.Delay(attempt, interval.Failure(err))
		if derr != nil {
			r.events.Process(AttemptEvent{Attempt: attempt, Err: err})
			return derr
		}
		r.events.Process(AttemptEvent{Attempt: attempt, Err: err, Delay: delay})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}
