// Package stopwatch records a start instant from a clock.Clock and
// yields elapsed duration on demand.
package stopwatch

import (
	"time"

	"github.com/corevane/resilicore/clock"
)

// Stopwatch measures elapsed time from a fixed start instant. It is
// immutable after construction: there is no Reset.
type Stopwatch struct {
	clock clock.Clock
	start int64 // monotonic nanoseconds
}

// Start captures the current monotonic instant from c.
func Start(c clock.Clock) *Stopwatch {
	return &Stopwatch{clock: c, start: c.MonotonicTimeNS()}
}

// Elapsed returns the duration since Start was called. Safe to call
// repeatedly.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Duration(s.clock.MonotonicTimeNS() - s.start)
}
