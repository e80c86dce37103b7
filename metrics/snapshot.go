package metrics

import (
	"fmt"
	"time"
)

// counts is the aggregate contribution of zero or more samples. It is
// the unit both buckets and window aggregates are expressed in, so
// applying a bucket's replacement is a matter of subtracting its old
// counts and adding its new ones.
type counts struct {
	total           uint64
	failed          uint64
	slow            uint64
	slowFailed      uint64
	totalDurationNS uint64
}

// contribution returns the counts a single sample of the given
// duration and outcome adds to a bucket.
func contribution(outcome Outcome, durationNS int64) counts {
	if durationNS < 0 {
		durationNS = 0
	}
	c := counts{total: 1, totalDurationNS: uint64(durationNS)}
	if outcome.failed() {
		c.failed = 1
	}
	if outcome.slow() {
		c.slow = 1
	}
	if outcome == SlowError {
		c.slowFailed = 1
	}
	return c
}

func (c counts) add(o counts) counts {
	return counts{
		total:           c.total + o.total,
		failed:          c.failed + o.failed,
		slow:            c.slow + o.slow,
		slowFailed:      c.slowFailed + o.slowFailed,
		totalDurationNS: c.totalDurationNS + o.totalDurationNS,
	}
}

func (c counts) sub(o counts) counts {
	return counts{
		total:           c.total - o.total,
		failed:          c.failed - o.failed,
		slow:            c.slow - o.slow,
		slowFailed:      c.slowFailed - o.slowFailed,
		totalDurationNS: c.totalDurationNS - o.totalDurationNS,
	}
}

// Snapshot is an immutable, value-typed view of a window's aggregate at
// the moment it was taken. It does not retain any reference to the
// window it was derived from.
type Snapshot struct {
	TotalCalls          uint64
	SuccessfulCalls     uint64
	FailedCalls         uint64
	SlowCalls           uint64
	SlowSuccessfulCalls uint64
	SlowFailedCalls     uint64
	FailureRatePct      float64
	SlowCallRatePct     float64
	TotalDuration       time.Duration
	AverageDuration     time.Duration
}

// String renders a compact debug summary.
func (s Snapshot) String() string {
	return fmt.Sprintf(
		"Snapshot{total=%d, failed=%d, slow=%d, slow_failed=%d, failure_rate=%.1f%%, slow_call_rate=%.1f%%, avg=%s}",
		s.TotalCalls, s.FailedCalls, s.SlowCalls, s.SlowFailedCalls,
		s.FailureRatePct, s.SlowCallRatePct, s.AverageDuration)
}

// snapshotFrom derives a Snapshot from an aggregate counts value.
func snapshotFrom(c counts) Snapshot {
	s := Snapshot{
		TotalCalls:          c.total,
		SuccessfulCalls:     c.total - c.failed,
		FailedCalls:         c.failed,
		SlowCalls:           c.slow,
		SlowSuccessfulCalls: c.slow - c.slowFailed,
		SlowFailedCalls:     c.slowFailed,
		TotalDuration:       time.Duration(c.totalDurationNS),
	}
	if c.total > 0 {
		s.FailureRatePct = 100 * float64(c.failed) / float64(c.total)
		s.SlowCallRatePct = 100 * float64(c.slow) / float64(c.total)
		s.AverageDuration = time.Duration(c.totalDurationNS / c.total)
	}
	return s
}
