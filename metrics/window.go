package metrics

import "time"

// Window accumulates call outcomes over a sliding range — either the
// last N samples or the last W seconds, depending on implementation —
// and produces point-in-time Snapshots of the aggregate.
type Window interface {
	// Record adds one sample and returns the resulting snapshot.
	Record(duration time.Duration, outcome Outcome) Snapshot

	// Snapshot returns the current aggregate without recording a
	// sample.
	Snapshot() Snapshot
}

// RecordDuration normalizes a duration expressed in an arbitrary unit
// (any time.Duration constant, e.g. time.Millisecond) before recording
// it, matching callers that measure elapsed time in a unit other than
// nanoseconds.
func RecordDuration(w Window, d time.Duration, unit time.Duration, outcome Outcome) Snapshot {
	return w.Record(d*unit, outcome)
}
