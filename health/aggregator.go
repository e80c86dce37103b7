package health

import (
	"context"
	"sync"
	"time"

	"github.com/corevane/resilicore/clock"
	"github.com/corevane/resilicore/interval"
	"github.com/corevane/resilicore/stopwatch"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout is the maximum time to wait for all checks.
	// Default: 10 seconds
	Timeout time.Duration

	// Parallel runs health checks in parallel when true.
	// Default: true when NewAggregator is called without a config; an
	// explicit AggregatorConfig keeps the value it carries.
	Parallel bool

	// Clock supplies the aggregator's notion of time, the same
	// dependency breaker.Config and ratelimit.Config each take
	// instead of calling time.Now directly, so a test can
	// swap in a clock.Manual. Defaults to clock.System.
	Clock clock.Clock

	// UnhealthyRecheckInterval, if set, suppresses re-invoking a
	// checker that is currently reporting Unhealthy until the delay it
	// computes from the checker's consecutive-failure count has
	// elapsed — a backoff wait for a known-unhealthy dependency, the
	// same role breaker.Config.WaitInterval plays for a breaker's
	// Open-to-HalfOpen transition. While suppressed, Check/CheckAll
	// return the last real result instead of invoking the checker.
	// Default: nil (always recheck).
	UnhealthyRecheckInterval interval.Func
}

// checkerState tracks the consecutive-failure bookkeeping backing
// UnhealthyRecheckInterval for one registered checker.
type checkerState struct {
	consecutiveFailures int
	lastCheckedNS       int64
	lastResult          Result
}

// Aggregator combines multiple health checkers into a single composite check.
type Aggregator struct {
	config   AggregatorConfig
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string // Maintains registration order
	state    map[string]*checkerState
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	cfg := AggregatorConfig{
		Timeout:  10 * time.Second,
		Parallel: true,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Timeout <= 0 {
			cfg.Timeout = 10 * time.Second
		}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System
	}

	return &Aggregator{
		config:   cfg,
		checkers: make(map[string]Checker),
		order:    make([]string, 0),
		state:    make(map[string]*checkerState),
	}
}

// Register adds a health checker to the aggregator.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// Unregister removes a health checker from the aggregator.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.checkers, name)
	delete(a.state, name)

	// Remove from order
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// CheckerNames returns the names of all registered checkers.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Check runs a single named health check, subject to
// UnhealthyRecheckInterval suppression.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()

	if !ok {
		return Result{}, ErrCheckerNotFound
	}

	return a.checkNamed(ctx, name, checker), nil
}

// CheckAll runs all registered health checks and returns the results.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, checker := range a.checkers {
		checkers[name] = checker
	}
	a.mu.RUnlock()

	if len(checkers) == 0 {
		return make(map[string]Result)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	results := make(map[string]Result, len(checkers))

	if a.config.Parallel {
		var wg sync.WaitGroup
		var mu sync.Mutex

		for name, checker := range checkers {
			wg.Add(1)
			go func(name string, checker Checker) {
				defer wg.Done()
				result := a.checkNamed(ctx, name, checker)
				mu.Lock()
				results[name] = result
				mu.Unlock()
			}(name, checker)
		}

		wg.Wait()
	} else {
		for name, checker := range checkers {
			results[name] = a.checkNamed(ctx, name, checker)
		}
	}

	return results
}

// OverallStatus computes the overall health status from a set of results.
// Returns Unhealthy if any check is unhealthy.
// Returns Degraded if any check is degraded but none are unhealthy.
// Returns Healthy if all checks are healthy.
func (a *Aggregator) OverallStatus(results map[string]Result) Status {
	if len(results) == 0 {
		return StatusHealthy
	}

	hasUnhealthy := false
	hasDegraded := false

	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// checkNamed runs checker unless UnhealthyRecheckInterval is currently
// suppressing it, updating the per-checker failure-streak bookkeeping
// either way.
func (a *Aggregator) checkNamed(ctx context.Context, name string, checker Checker) Result {
	if a.config.UnhealthyRecheckInterval != nil {
		if cached, ok := a.suppressedResult(name); ok {
			return cached
		}
	}

	result := a.runCheck(ctx, checker)
	a.recordState(name, result)
	return result
}

// suppressedResult reports the last result for name if
// UnhealthyRecheckInterval's backoff for its current failure streak
// has not yet elapsed.
func (a *Aggregator) suppressedResult(name string) (Result, bool) {
	a.mu.RLock()
	st, ok := a.state[name]
	a.mu.RUnlock()
	if !ok || st.consecutiveFailures == 0 {
		return Result{}, false
	}

	wait, err := a.config.UnhealthyRecheckInterval(st.consecutiveFailures)
	if err != nil {
		return Result{}, false
	}

	elapsed := time.Duration(a.config.Clock.MonotonicTimeNS() - st.lastCheckedNS)
	if elapsed < wait {
		return st.lastResult, true
	}
	return Result{}, false
}

// recordState updates the consecutive-failure streak for name after a
// real (non-suppressed) check.
func (a *Aggregator) recordState(name string, result Result) {
	if a.config.UnhealthyRecheckInterval == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	st, ok := a.state[name]
	if !ok {
		st = &checkerState{}
		a.state[name] = st
	}
	if result.Status == StatusUnhealthy {
		st.consecutiveFailures++
	} else {
		st.consecutiveFailures = 0
	}
	st.lastCheckedNS = a.config.Clock.MonotonicTimeNS()
	st.lastResult = result
}

func (a *Aggregator) runCheck(ctx context.Context, checker Checker) Result {
	sw := stopwatch.Start(a.config.Clock)
	start := time.UnixMilli(a.config.Clock.WallTimeMS())

	resultCh := make(chan Result, 1)

	go func() {
		result := checker.Check(ctx)
		result.Duration = sw.Elapsed()
		if result.Timestamp.IsZero() {
			result.Timestamp = start
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Duration:  sw.Elapsed(),
			Timestamp: start,
		}
	}
}

// Checker returns a single Checker interface for the aggregator.
// This allows the aggregator to be used as a checker itself.
func (a *Aggregator) Checker() Checker {
	return &aggregatorChecker{agg: a}
}

// AggregateDetails is the Details value attached to the Result
// produced by Aggregator.Checker(), summarizing every constituent
// check by name instead of nesting an untyped map of maps.
type AggregateDetails struct {
	Checks map[string]CheckSummary
}

// CheckSummary is one constituent checker's contribution to an
// AggregateDetails.
type CheckSummary struct {
	Status   Status
	Message  string
	Duration time.Duration
}

type aggregatorChecker struct {
	agg *Aggregator
}

func (c *aggregatorChecker) Name() string {
	return "aggregate"
}

func (c *aggregatorChecker) Check(ctx context.Context) Result {
	results := c.agg.CheckAll(ctx)
	status := c.agg.OverallStatus(results)

	checks := make(map[string]CheckSummary, len(results))
	for name, result := range results {
		checks[name] = CheckSummary{
			Status:   result.Status,
			Message:  result.Message,
			Duration: result.Duration,
		}
	}

	var message string
	switch status {
	case StatusHealthy:
		message = "all checks passed"
	case StatusDegraded:
		message = "some checks degraded"
	case StatusUnhealthy:
		message = "some checks failed"
	}

	return Result{
		Status:    status,
		Message:   message,
		Details:   AggregateDetails{Checks: checks},
		Timestamp: time.UnixMilli(c.agg.config.Clock.WallTimeMS()),
	}
}
