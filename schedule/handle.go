package schedule

import "sync/atomic"

// Handle refers to a task submitted to an Executor.
type Handle struct {
	inner *taskHandle
}

// Cancel marks the task cancelled. Cancellation is cooperative: an
// in-flight run is never interrupted, but a future invocation of a
// recurring task is suppressed, and a run that has not yet started is
// skipped. Cancel returns whether this call transitioned the task from
// live to cancelled.
func (h Handle) Cancel() bool {
	return h.inner.cancelled.CompareAndSwap(false, true)
}

// Cancelled reports whether Cancel has been called.
func (h Handle) Cancelled() bool {
	return h.inner.cancelled.Load()
}

type taskHandle struct {
	cancelled atomic.Bool
}
