// Package interval provides pure functions mapping an attempt number to
// a delay, used to pace retries, circuit-breaker recovery probes, and
// rate-limiter backoff. Every family is total on attempt >= 1; the
// returned Func validates its construction-time parameters on each
// call and reports a bad one as an error.
package interval

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/corevane/resilicore/corefault"
)

// Default parameters for callers with no specific values of their own.
// The constructors below do not substitute them for zero or missing
// arguments.
const (
	DefaultInitialInterval     = 500 * time.Millisecond
	DefaultMultiplier          = 1.5
	DefaultRandomizationFactor = 0.5
)

// Func computes the delay before attempt n (1-based).
type Func func(attempt int) (time.Duration, error)

// BiasedFunc computes the delay before attempt n given the outcome of
// the previous attempt.
type BiasedFunc func(attempt int, result Result) (time.Duration, error)

// Biased lifts a plain Func into a BiasedFunc that ignores the result.
func Biased(f Func) BiasedFunc {
	return func(attempt int, _ Result) (time.Duration, error) {
		return f(attempt)
	}
}

func validateAttempt(op string, attempt int) error {
	if attempt < 1 {
		return corefault.New(corefault.Validation, op, "attempt must be >= 1")
	}
	return nil
}

func validateInterval(op string, interval time.Duration) error {
	if interval < 1 {
		return corefault.New(corefault.Validation, op, "interval must be >= 1ns")
	}
	return nil
}

func validateRandomizationFactor(op string, factor float64) error {
	if factor < 0 || factor > 1 {
		return corefault.New(corefault.Validation, op, "randomization factor must be in [0,1]")
	}
	return nil
}

// Fixed returns a Func that always yields interval.
func Fixed(interval time.Duration) Func {
	return func(attempt int) (time.Duration, error) {
		if err := validateAttempt("interval.Fixed", attempt); err != nil {
			return 0, err
		}
		if err := validateInterval("interval.Fixed", interval); err != nil {
			return 0, err
		}
		return interval, nil
	}
}

// CustomBackoff returns a Func that applies f to the prior delay,
// n-1 times, starting from interval. f is applied iteratively rather
// than in closed form, matching the reference semantics for
// user-supplied backoff functions: a memoizing implementation must
// still produce the same value for the same n.
func CustomBackoff(interval time.Duration, f func(time.Duration) time.Duration) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.CustomBackoff"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		delay := interval
		for i := 1; i < attempt; i++ {
			delay = f(delay)
		}
		return delay, nil
	}
}

// Exponential returns a Func computing interval * multiplier^(n-1).
func Exponential(interval time.Duration, multiplier float64) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.Exponential"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		return exponentialDelay(interval, multiplier, attempt), nil
	}
}

// ExponentialCapped returns a Func computing
// min(interval * multiplier^(n-1), cap).
func ExponentialCapped(interval time.Duration, multiplier float64, cap time.Duration) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.ExponentialCapped"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		delay := exponentialDelay(interval, multiplier, attempt)
		if delay > cap {
			delay = cap
		}
		return delay, nil
	}
}

// Randomized returns a Func uniformly sampled from
// [interval*(1-factor), interval*(1+factor)], clamped to >= 1ns.
func Randomized(interval time.Duration, factor float64) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.Randomized"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		if err := validateRandomizationFactor(op, factor); err != nil {
			return 0, err
		}
		return randomize(interval, factor), nil
	}
}

// ExponentialRandomized composes Exponential and Randomized: the
// exponential delay for attempt n is randomized by factor.
func ExponentialRandomized(interval time.Duration, multiplier, factor float64) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.ExponentialRandomized"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		if err := validateRandomizationFactor(op, factor); err != nil {
			return 0, err
		}
		base := exponentialDelay(interval, multiplier, attempt)
		return randomize(base, factor), nil
	}
}

// ExponentialRandomizedCapped composes ExponentialRandomized with a cap
// applied after randomization.
func ExponentialRandomizedCapped(interval time.Duration, multiplier, factor float64, cap time.Duration) Func {
	return func(attempt int) (time.Duration, error) {
		const op = "interval.ExponentialRandomizedCapped"
		if err := validateAttempt(op, attempt); err != nil {
			return 0, err
		}
		if err := validateInterval(op, interval); err != nil {
			return 0, err
		}
		if err := validateRandomizationFactor(op, factor); err != nil {
			return 0, err
		}
		base := exponentialDelay(interval, multiplier, attempt)
		delay := randomize(base, factor)
		if delay > cap {
			delay = cap
		}
		return delay, nil
	}
}

func exponentialDelay(interval time.Duration, multiplier float64, attempt int) time.Duration {
	factor := math.Pow(multiplier, float64(attempt-1))
	return time.Duration(float64(interval) * factor)
}

// randomize samples uniformly from [interval*(1-factor), interval*(1+factor)]
// and clamps the result to at least 1ns.
func randomize(interval time.Duration, factor float64) time.Duration {
	if interval < 1 {
		interval = 1
	}
	lo := float64(interval) * (1 - factor)
	hi := float64(interval) * (1 + factor)
	if hi <= lo {
		return time.Duration(lo)
	}
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	sample := lo + rand.Float64()*(hi-lo)
	if sample < 1 {
		sample = 1
	}
	return time.Duration(sample)
}
