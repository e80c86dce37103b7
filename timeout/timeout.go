// Package timeout wraps an operation in a context.WithTimeout deadline.
package timeout

import (
	"context"
	"time"

	"github.com/corevane/resilicore/corefault"
)

// Config configures a Timeout.
type Config struct {
	// Duration is the maximum time the operation may run. Default: 30s.
	Duration time.Duration
}

func (c *Config) applyDefaults() {
	if c.Duration <= 0 {
		c.Duration = 30 * time.Second
	}
}

// ErrTimedOut is returned when op does not complete within Config.Duration.
var ErrTimedOut = corefault.New(corefault.Validation, "timeout.Timeout.Execute", "operation timed out")

// Timeout wraps an operation with a deadline.
type Timeout struct {
	config Config
}

// New creates a Timeout.
func New(config Config) *Timeout {
	config.applyDefaults()
	return &Timeout{config: config}
}

// Execute runs op, cancelling its context after Config.Duration and
// reporting ErrTimedOut if it has not returned by then.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.config.Duration)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- op(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimedOut
		}
		return ctx.Err()
	}
}

// Execute is a convenience wrapping op with a one-off Timeout of the
// given duration.
func Execute(ctx context.Context, duration time.Duration, op func(context.Context) error) error {
	return New(Config{Duration: duration}).Execute(ctx, op)
}
