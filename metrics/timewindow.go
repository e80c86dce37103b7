package metrics

import (
	"sync"
	"time"

	"github.com/corevane/resilicore/clock"
)

// timeBucket is one second-wide slot. valid is false until the slot has
// ever been written; a false valid flag never contributes to the
// aggregate and is never mistaken for a real epoch-second of 0.
type timeBucket struct {
	second int64
	valid  bool
	c      counts
}

// timeWindow retains samples recorded within the last seconds whole
// seconds, measured against a monotonic clock. Stale buckets are
// recycled lazily: on write, only the bucket being targeted; before a
// snapshot, every bucket whose stored second has aged past the
// window, so a snapshot never reflects a sample older than seconds.
type timeWindow struct {
	mu        sync.Mutex
	clk       clock.Clock
	seconds   int64
	buckets   []timeBucket
	aggregate counts
}

// NewTimeBasedWindow creates a mutex-guarded time-based window
// spanning the given number of seconds, using clk as the monotonic
// time source. seconds must be at least 1.
func NewTimeBasedWindow(seconds int, clk clock.Clock) Window {
	if seconds < 1 {
		seconds = 1
	}
	return &timeWindow{
		clk:     clk,
		seconds: int64(seconds),
		buckets: make([]timeBucket, seconds),
	}
}

func (w *timeWindow) currentSecond() int64 {
	return w.clk.MonotonicTimeNS() / int64(time.Second)
}

// sweepLocked recycles every bucket whose stored second has aged past
// the window, relative to now. Must be called with w.mu held.
func (w *timeWindow) sweepLocked(now int64) {
	threshold := now - w.seconds
	for i := range w.buckets {
		b := &w.buckets[i]
		if b.valid && b.second <= threshold {
			w.aggregate = w.aggregate.sub(b.c)
			*b = timeBucket{}
		}
	}
}

func (w *timeWindow) Record(duration time.Duration, outcome Outcome) Snapshot {
	next := contribution(outcome, int64(duration))

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.currentSecond()
	w.sweepLocked(now)

	idx := now % w.seconds
	b := &w.buckets[idx]
	if !b.valid || b.second != now {
		if b.valid {
			w.aggregate = w.aggregate.sub(b.c)
		}
		*b = timeBucket{second: now, valid: true}
	}
	b.c = b.c.add(next)
	w.aggregate = w.aggregate.add(next)

	return snapshotFrom(w.aggregate)
}

func (w *timeWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sweepLocked(w.currentSecond())
	return snapshotFrom(w.aggregate)
}
