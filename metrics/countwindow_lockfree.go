package metrics

import (
	"sync/atomic"
	"time"
)

// countWindowLockFree is the CAS-based analog of countWindow. A
// monotonically increasing counter assigns each Record call a
// position in the ring, giving concurrent callers a total order
// equivalent to some serialization of their calls; each bucket and the
// aggregate are swapped in with compare-and-swap retry loops rather
// than a mutex.
type countWindowLockFree struct {
	nextIndex atomic.Int64
	buckets   []atomic.Pointer[counts]
	aggregate atomic.Pointer[counts]
}

// NewCountBasedWindowLockFree creates a lock-free count-based window
// retaining the last size samples. size must be at least 1.
func NewCountBasedWindowLockFree(size int) Window {
	if size < 1 {
		size = 1
	}
	return &countWindowLockFree{buckets: make([]atomic.Pointer[counts], size)}
}

func (w *countWindowLockFree) Record(duration time.Duration, outcome Outcome) Snapshot {
	next := contribution(outcome, int64(duration))

	pos := w.nextIndex.Add(1) - 1
	slot := &w.buckets[pos%int64(len(w.buckets))]

	var evicted counts
	for {
		oldPtr := slot.Load()
		if oldPtr != nil {
			evicted = *oldPtr
		} else {
			evicted = counts{}
		}
		newBucket := next
		if slot.CompareAndSwap(oldPtr, &newBucket) {
			break
		}
	}

	var result counts
	for {
		oldAgg := w.aggregate.Load()
		var base counts
		if oldAgg != nil {
			base = *oldAgg
		}
		result = base.add(next).sub(evicted)
		newAgg := result
		if w.aggregate.CompareAndSwap(oldAgg, &newAgg) {
			break
		}
	}

	return snapshotFrom(result)
}

func (w *countWindowLockFree) Snapshot() Snapshot {
	agg := w.aggregate.Load()
	if agg == nil {
		return snapshotFrom(counts{})
	}
	return snapshotFrom(*agg)
}
