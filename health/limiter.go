package health

import (
	"context"
	"fmt"

	"github.com/corevane/resilicore/ratelimit"
)

// LimiterDetails is the Details value a LimiterChecker attaches to its
// Result: the limiter's remaining tokens against its configured burst.
type LimiterDetails struct {
	AvailableTokens float64
	Burst           int
}

// LimiterChecker reports a rate limiter's remaining capacity as a
// health Result. A limiter that has been fully drained is reported
// Degraded rather than Unhealthy: callers are being throttled, not
// failing, and a limiter recovers on its own as tokens refill.
type LimiterChecker struct {
	name string
	l    *ratelimit.Limiter
	cfg  ratelimit.Config
}

// NewLimiterChecker creates a Checker bridging l's token budget into
// the health aggregator. cfg must be the same Config used to build l,
// since Limiter does not expose its own Burst.
func NewLimiterChecker(name string, l *ratelimit.Limiter, cfg ratelimit.Config) *LimiterChecker {
	return &LimiterChecker{name: name, l: l, cfg: cfg}
}

// Name returns the checker's name.
func (c *LimiterChecker) Name() string { return c.name }

// Check reports the limiter's current token budget as a
// LimiterDetails.
func (c *LimiterChecker) Check(ctx context.Context) Result {
	tokens := c.l.Tokens()
	details := LimiterDetails{AvailableTokens: tokens, Burst: c.cfg.Burst}

	if tokens < 1 {
		return Degraded(fmt.Sprintf("rate limiter %q has no tokens available", c.name)).WithDetails(details)
	}
	return Healthy(fmt.Sprintf("rate limiter %q has capacity", c.name)).WithDetails(details)
}

var _ Checker = (*LimiterChecker)(nil)
