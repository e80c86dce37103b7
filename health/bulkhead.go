package health

import (
	"context"
	"fmt"

	"github.com/corevane/resilicore/bulkhead"
)

// BulkheadDetails is the Details value a BulkheadChecker attaches to
// its Result: the bulkhead's current occupancy.
type BulkheadDetails struct {
	Active        int
	MaxConcurrent int
	Rejected      int64
}

// BulkheadChecker reports a bulkhead's occupancy as a health Result.
// A bulkhead at capacity is Degraded (callers are being queued or
// rejected, not broken); one that has rejected calls at all is still
// Healthy unless it is currently full, since a rejection only reflects
// a past burst, not present state.
type BulkheadChecker struct {
	name string
	b    *bulkhead.Bulkhead
}

// NewBulkheadChecker creates a Checker bridging b's occupancy into the
// health aggregator.
func NewBulkheadChecker(name string, b *bulkhead.Bulkhead) *BulkheadChecker {
	return &BulkheadChecker{name: name, b: b}
}

// Name returns the checker's name.
func (c *BulkheadChecker) Name() string { return c.name }

// Check reports the bulkhead's current occupancy as a
// BulkheadDetails.
func (c *BulkheadChecker) Check(ctx context.Context) Result {
	snap := c.b.Snapshot()
	details := BulkheadDetails{
		Active:        snap.Active,
		MaxConcurrent: snap.MaxConcurrent,
		Rejected:      snap.Rejected,
	}

	if snap.Available <= 0 {
		return Degraded(fmt.Sprintf("bulkhead %q is at capacity", c.name)).WithDetails(details)
	}
	return Healthy(fmt.Sprintf("bulkhead %q has free capacity", c.name)).WithDetails(details)
}

var _ Checker = (*BulkheadChecker)(nil)
