// Package resilicoreconfig loads and validates default settings for
// the policy packages, following the same validate-before-use
// discipline as observability.Config.
package resilicoreconfig

import (
	"time"

	"github.com/corevane/resilicore/corefault"
	"github.com/corevane/resilicore/observability"
)

// BreakerDefaults configures a default circuit breaker.
type BreakerDefaults struct {
	FailureRateThreshold      float64
	SlowCallRateThreshold     float64
	SlowCallDurationThreshold time.Duration
	MinimumNumberOfCalls      int
	PermittedCallsInHalfOpen  int
	WindowSize                int
	WaitInterval              time.Duration
}

// RetrierDefaults configures a default retrier.
type RetrierDefaults struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// RateLimiterDefaults configures a default rate limiter.
type RateLimiterDefaults struct {
	Rate  float64
	Burst int
}

// BulkheadDefaults configures a default bulkhead.
type BulkheadDefaults struct {
	MaxConcurrent int
	MaxWait       time.Duration
}

// TimeoutDefaults configures a default timeout.
type TimeoutDefaults struct {
	Duration time.Duration
}

// Config aggregates default settings for every policy package plus
// the observability sub-configuration.
type Config struct {
	Breaker       BreakerDefaults
	Retrier       RetrierDefaults
	RateLimiter   RateLimiterDefaults
	Bulkhead      BulkheadDefaults
	Timeout       TimeoutDefaults
	Observability observability.Config
}

// Default returns a Config populated with the same defaults each
// policy package applies on its own when left unconfigured.
func Default(serviceName string) Config {
	return Config{
		Breaker: BreakerDefaults{
			FailureRateThreshold:     50,
			SlowCallRateThreshold:    100,
			MinimumNumberOfCalls:     1,
			PermittedCallsInHalfOpen: 1,
			WindowSize:               100,
			WaitInterval:             60 * time.Second,
		},
		Retrier:     RetrierDefaults{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond},
		RateLimiter: RateLimiterDefaults{Rate: 100, Burst: 10},
		Bulkhead:    BulkheadDefaults{MaxConcurrent: 10},
		Timeout:     TimeoutDefaults{Duration: 30 * time.Second},
		Observability: observability.Config{
			ServiceName: serviceName,
		},
	}
}

// Load applies overrides on top of Default(serviceName) and validates
// the result.
func Load(serviceName string, overrides func(*Config)) (Config, error) {
	cfg := Default(serviceName)
	if overrides != nil {
		overrides(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field for internally-consistent, usable
// values, returning a *corefault.Error{Kind: corefault.Validation} on
// the first problem found.
func (c *Config) Validate() error {
	const op = "resilicoreconfig.Config.Validate"

	if c.Breaker.FailureRateThreshold < 0 || c.Breaker.FailureRateThreshold > 100 {
		return corefault.New(corefault.Validation, op, "breaker failure rate threshold must be in [0, 100]")
	}
	if c.Breaker.SlowCallRateThreshold < 0 || c.Breaker.SlowCallRateThreshold > 100 {
		return corefault.New(corefault.Validation, op, "breaker slow call rate threshold must be in [0, 100]")
	}
	if c.Breaker.MinimumNumberOfCalls < 1 {
		return corefault.New(corefault.Validation, op, "breaker minimum number of calls must be >= 1")
	}
	if c.Breaker.PermittedCallsInHalfOpen < 1 {
		return corefault.New(corefault.Validation, op, "breaker permitted calls in half-open must be >= 1")
	}
	if c.Breaker.WindowSize < 1 {
		return corefault.New(corefault.Validation, op, "breaker window size must be >= 1")
	}
	if c.Breaker.WaitInterval <= 0 {
		return corefault.New(corefault.Validation, op, "breaker wait interval must be positive")
	}

	if c.Retrier.MaxAttempts < 1 {
		return corefault.New(corefault.Validation, op, "retrier max attempts must be >= 1")
	}
	if c.Retrier.InitialDelay < 0 {
		return corefault.New(corefault.Validation, op, "retrier initial delay must not be negative")
	}

	if c.RateLimiter.Rate <= 0 {
		return corefault.New(corefault.Validation, op, "rate limiter rate must be positive")
	}
	if c.RateLimiter.Burst < 1 {
		return corefault.New(corefault.Validation, op, "rate limiter burst must be >= 1")
	}

	if c.Bulkhead.MaxConcurrent < 1 {
		return corefault.New(corefault.Validation, op, "bulkhead max concurrent must be >= 1")
	}
	if c.Bulkhead.MaxWait < 0 {
		return corefault.New(corefault.Validation, op, "bulkhead max wait must not be negative")
	}

	if c.Timeout.Duration <= 0 {
		return corefault.New(corefault.Validation, op, "timeout duration must be positive")
	}

	if err := c.Observability.Validate(); err != nil {
		return corefault.New(corefault.Validation, op, "observability: "+err.Error())
	}

	return nil
}
