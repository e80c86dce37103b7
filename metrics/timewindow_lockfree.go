package metrics

import (
	"sync/atomic"
	"time"

	"github.com/corevane/resilicore/clock"
)

// tbucket is the immutable payload swapped into a lock-free time
// window's bucket slots.
type tbucket struct {
	second int64
	c      counts
}

// timeWindowLockFree is the CAS-based analog of timeWindow. Every
// bucket and the aggregate are boxed behind an atomic.Pointer and
// updated with compare-and-swap retry loops.
type timeWindowLockFree struct {
	clk       clock.Clock
	seconds   int64
	buckets   []atomic.Pointer[tbucket]
	aggregate atomic.Pointer[counts]
}

// NewTimeBasedWindowLockFree creates a lock-free time-based window
// spanning the given number of seconds, using clk as the monotonic
// time source. seconds must be at least 1.
func NewTimeBasedWindowLockFree(seconds int, clk clock.Clock) Window {
	if seconds < 1 {
		seconds = 1
	}
	return &timeWindowLockFree{
		clk:     clk,
		seconds: int64(seconds),
		buckets: make([]atomic.Pointer[tbucket], seconds),
	}
}

func (w *timeWindowLockFree) currentSecond() int64 {
	return w.clk.MonotonicTimeNS() / int64(time.Second)
}

func (w *timeWindowLockFree) applyDelta(add, sub counts) counts {
	for {
		oldAgg := w.aggregate.Load()
		var base counts
		if oldAgg != nil {
			base = *oldAgg
		}
		result := base.add(add).sub(sub)
		newAgg := result
		if w.aggregate.CompareAndSwap(oldAgg, &newAgg) {
			return result
		}
	}
}

// sweep recycles every bucket whose stored second has aged past the
// window relative to now, subtracting each from the aggregate exactly
// once.
func (w *timeWindowLockFree) sweep(now int64) {
	threshold := now - w.seconds
	for i := range w.buckets {
		slot := &w.buckets[i]
		for {
			oldPtr := slot.Load()
			if oldPtr == nil || oldPtr.second > threshold {
				break
			}
			if slot.CompareAndSwap(oldPtr, nil) {
				w.applyDelta(counts{}, oldPtr.c)
				break
			}
		}
	}
}

func (w *timeWindowLockFree) Record(duration time.Duration, outcome Outcome) Snapshot {
	next := contribution(outcome, int64(duration))

	now := w.currentSecond()
	w.sweep(now)

	slot := &w.buckets[now%w.seconds]

	var result counts
	for {
		oldPtr := slot.Load()
		var evicted counts
		var newBucket tbucket
		if oldPtr != nil && oldPtr.second == now {
			newBucket = tbucket{second: now, c: oldPtr.c.add(next)}
		} else {
			if oldPtr != nil {
				evicted = oldPtr.c
			}
			newBucket = tbucket{second: now, c: next}
		}
		if slot.CompareAndSwap(oldPtr, &newBucket) {
			result = w.applyDelta(next, evicted)
			break
		}
	}

	return snapshotFrom(result)
}

func (w *timeWindowLockFree) Snapshot() Snapshot {
	w.sweep(w.currentSecond())
	agg := w.aggregate.Load()
	if agg == nil {
		return snapshotFrom(counts{})
	}
	return snapshotFrom(*agg)
}
