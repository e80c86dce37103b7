// Package health exposes the state of the resilience policies —
// breaker, ratelimit, bulkhead — and the process's own memory
// footprint as a uniform set of Checkers, aggregated into one
// composite health view.
//
// # Core Concepts
//
// A Checker reports its component's health as a Result: Healthy,
// Degraded, or Unhealthy, plus a typed Details value specific to the
// checker (BreakerDetails, LimiterDetails, BulkheadDetails,
// MemoryDetails) rather than a generic key-value bag.
//
// # Basic Usage
//
//	// Wrap a circuit breaker's lifecycle state
//	breakerCheck := health.NewBreakerChecker("payments", cb)
//
//	// Check health
//	result := breakerCheck.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("breaker open: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single composite check:
//
//	agg := health.NewAggregator(health.AggregatorConfig{
//	    Clock:                    clock.System,
//	    UnhealthyRecheckInterval: interval.ExponentialCapped(time.Second, 2, 30*time.Second),
//	})
//	agg.Register("payments-breaker", breakerCheck)
//	agg.Register("payments-limiter", health.NewLimiterChecker("payments-limiter", limiter, limiterCfg))
//	agg.Register("worker-pool", health.NewBulkheadChecker("worker-pool", pool))
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//
//	// Check all components
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// UnhealthyRecheckInterval throttles how often a checker that is
// currently Unhealthy gets re-invoked, the same backoff role
// breaker.Config.WaitInterval plays for a breaker's own Open-to-HalfOpen
// transition.
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common health check patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(aggregator))
//
//	// Detailed health status, including each checker's typed Details
//	http.Handle("/health", health.DetailedHandler(aggregator))
package health
