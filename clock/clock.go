// Package clock provides the time abstraction every other resilicore
// package builds on: a wall-clock reading for human-visible timestamps,
// and a monotonic reading for anything that measures elapsed duration.
//
// Production code should use clock.System. Tests that need
// deterministic timing should construct a *Manual and advance it
// explicitly.
package clock

import "time"

// Clock is the abstract source of time used throughout resilicore.
type Clock interface {
	// WallTimeMS returns the current real-time milliseconds since the
	// epoch. May jump (NTP adjustment, leap seconds); never used for
	// interval measurement.
	WallTimeMS() int64

	// MonotonicTimeNS returns a value guaranteed non-decreasing across
	// the lifetime of the process.
	MonotonicTimeNS() int64
}

type systemClock struct {
	epoch time.Time
}

// System is the process-wide Clock backed by the operating system.
var System Clock = &systemClock{epoch: time.Now()}

func (c *systemClock) WallTimeMS() int64 {
	return time.Now().UnixMilli()
}

func (c *systemClock) MonotonicTimeNS() int64 {
	return time.Since(c.epoch).Nanoseconds()
}
