package metrics

import (
	"sync"
	"time"
)

// countWindow is a fixed-size ring of single-sample buckets: the last
// size samples — no more, no less, once size samples have been
// recorded — contribute to the snapshot.
type countWindow struct {
	mu        sync.Mutex
	buckets   []counts
	nextIndex int
	aggregate counts
}

// NewCountBasedWindow creates a mutex-guarded count-based window that
// retains the last size samples. size must be at least 1.
func NewCountBasedWindow(size int) Window {
	if size < 1 {
		size = 1
	}
	return &countWindow{buckets: make([]counts, size)}
}

func (w *countWindow) Record(duration time.Duration, outcome Outcome) Snapshot {
	next := contribution(outcome, int64(duration))

	w.mu.Lock()
	defer w.mu.Unlock()

	evicted := w.buckets[w.nextIndex]
	w.buckets[w.nextIndex] = next
	w.aggregate = w.aggregate.add(next).sub(evicted)
	w.nextIndex = (w.nextIndex + 1) % len(w.buckets)

	return snapshotFrom(w.aggregate)
}

func (w *countWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return snapshotFrom(w.aggregate)
}
