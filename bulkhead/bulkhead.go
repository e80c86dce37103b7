// Package bulkhead limits concurrent operations with a fixed-size
// semaphore, the same design as a hand-rolled channel-backed
// concurrency limiter.
package bulkhead

import (
	"context"
	"sync"
	"time"

	"github.com/corevane/resilicore/corefault"
)

// Config configures a Bulkhead.
type Config struct {
	// MaxConcurrent bounds concurrently in-flight operations. Default: 10.
	MaxConcurrent int

	// MaxWait bounds how long Acquire waits for a free slot once the
	// bulkhead is full. Default: 0 (fail immediately).
	MaxWait time.Duration
}

func (c *Config) applyDefaults() {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 10
	}
}

// ErrFull is returned when no slot is available within MaxWait.
var ErrFull = corefault.New(corefault.Validation, "bulkhead.Bulkhead.Acquire", "bulkhead is at capacity")

// Metrics is a point-in-time snapshot of a Bulkhead's occupancy.
type Metrics struct {
	Active        int
	MaxActive     int
	Available     int
	MaxConcurrent int
	Rejected      int64
}

// Bulkhead limits concurrent operations to Config.MaxConcurrent.
type Bulkhead struct {
	config Config
	sem    chan struct{}

	mu        sync.Mutex
	active    int
	maxActive int
	rejected  int64
}

// New creates a Bulkhead.
func New(config Config) *Bulkhead {
	config.applyDefaults()
	return &Bulkhead{config: config, sem: make(chan struct{}, config.MaxConcurrent)}
}

// Acquire reserves a slot, blocking up to Config.MaxWait if the
// bulkhead is momentarily full.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		b.noteAcquired()
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		b.noteRejected()
		return ErrFull
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		b.noteAcquired()
		return nil
	case <-timer.C:
		b.noteRejected()
		return ErrFull
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) noteAcquired() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
}

func (b *Bulkhead) noteRejected() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejected++
}

// Release frees a slot acquired by Acquire.
func (b *Bulkhead) Release() {
	select {
	case <-b.sem:
		b.mu.Lock()
		b.active--
		b.mu.Unlock()
	default:
	}
}

// Execute runs op within the bulkhead.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()
	return op(ctx)
}

// Snapshot returns the bulkhead's current occupancy.
func (b *Bulkhead) Snapshot() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Metrics{
		Active:        b.active,
		MaxActive:     b.maxActive,
		Available:     b.config.MaxConcurrent - b.active,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected,
	}
}
