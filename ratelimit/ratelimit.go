// Package ratelimit implements a token-bucket limiter, the same
// algorithm as a hand-rolled time.Now()-based limiter but driven by a
// clock.Clock so it is deterministically testable with clock.Manual.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/corevane/resilicore/clock"
	"github.com/corevane/resilicore/corefault"
)

// Config configures a Limiter.
type Config struct {
	// Rate is the number of tokens added per second. Default: 100.
	Rate float64

	// Burst is the bucket's capacity. Default: 10.
	Burst int

	// Clock supplies monotonic time. Defaults to clock.System.
	Clock clock.Clock
}

func (c *Config) applyDefaults() {
	if c.Rate <= 0 {
		c.Rate = 100
	}
	if c.Burst <= 0 {
		c.Burst = 10
	}
	if c.Clock == nil {
		c.Clock = clock.System
	}
}

// ErrLimitExceeded is returned when a non-blocking acquisition finds no
// token available.
var ErrLimitExceeded = corefault.New(corefault.Validation, "ratelimit.Limiter", "rate limit exceeded")

// Limiter is a token-bucket rate limiter.
type Limiter struct {
	config Config

	mu           sync.Mutex
	tokens       float64
	lastRefillNS int64
}

// New creates a Limiter starting at full burst capacity.
func New(config Config) *Limiter {
	config.applyDefaults()
	return &Limiter{
		config:       config,
		tokens:       float64(config.Burst),
		lastRefillNS: config.Clock.MonotonicTimeNS(),
	}
}

func (l *Limiter) refillLocked() {
	now := l.config.Clock.MonotonicTimeNS()
	elapsed := time.Duration(now - l.lastRefillNS)
	l.lastRefillNS = now

	l.tokens += elapsed.Seconds() * l.config.Rate
	if max := float64(l.config.Burst); l.tokens > max {
		l.tokens = max
	}
}

// AllowN reports whether n tokens are currently available, consuming
// them if so.
func (l *Limiter) AllowN(n int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refillLocked()
	if l.tokens >= float64(n) {
		l.tokens -= float64(n)
		return true
	}
	return false
}

// Allow is AllowN(1).
func (l *Limiter) Allow() bool { return l.AllowN(1) }

// WaitN blocks until n tokens are available or ctx is done.
func (l *Limiter) WaitN(ctx context.Context, n int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if l.AllowN(n) {
		return nil
	}

	l.mu.Lock()
	needed := float64(n) - l.tokens
	wait := time.Duration(needed / l.config.Rate * float64(time.Second))
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		if l.AllowN(n) {
			return nil
		}
		return ErrLimitExceeded
	}
}

// Wait is WaitN(ctx, 1).
func (l *Limiter) Wait(ctx context.Context) error { return l.WaitN(ctx, 1) }

// Execute runs op if a token is immediately available, else returns
// ErrLimitExceeded without running op.
func (l *Limiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if !l.Allow() {
		return ErrLimitExceeded
	}
	return op(ctx)
}

// Tokens returns the current number of available tokens after
// refilling.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.tokens
}

// Reset refills the bucket to full capacity.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = float64(l.config.Burst)
	l.lastRefillNS = l.config.Clock.MonotonicTimeNS()
}
