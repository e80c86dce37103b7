package health

import (
	"context"
	"fmt"

	"github.com/corevane/resilicore/breaker"
)

// BreakerDetails is the Details value a BreakerChecker attaches to its
// Result: the breaker's lifecycle state plus its backing window's
// failure/slow-call rates, typed instead of a generic key-value bag.
type BreakerDetails struct {
	State            string
	FailureRatePct   float64
	SlowCallRatePct  float64
	TotalCalls       uint64
}

// BreakerChecker reports a circuit breaker's state as a health Result:
// Open maps to unhealthy, HalfOpen to degraded, Closed to healthy.
type BreakerChecker struct {
	name string
	cb   *breaker.CircuitBreaker
}

// NewBreakerChecker creates a Checker bridging cb's lifecycle state
// into the health aggregator.
func NewBreakerChecker(name string, cb *breaker.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{name: name, cb: cb}
}

// Name returns the checker's name.
func (c *BreakerChecker) Name() string { return c.name }

// Check reports the breaker's current state, including its backing
// window's failure/slow-call rates as a BreakerDetails.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	state := c.cb.State()
	snap := c.cb.Snapshot()

	details := BreakerDetails{
		State:           state.String(),
		FailureRatePct:  snap.FailureRatePct,
		SlowCallRatePct: snap.SlowCallRatePct,
		TotalCalls:      snap.TotalCalls,
	}

	switch state {
	case breaker.Open:
		return Unhealthy(fmt.Sprintf("circuit breaker %q is open", c.name), nil).WithDetails(details)
	case breaker.HalfOpen:
		return Degraded(fmt.Sprintf("circuit breaker %q is probing after opening", c.name)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("circuit breaker %q is closed", c.name)).WithDetails(details)
	}
}

var _ Checker = (*BreakerChecker)(nil)
