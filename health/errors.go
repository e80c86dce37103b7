package health

import "errors"

var (
	// ErrCheckFailed is the error a built-in Checker attaches to an
	// Unhealthy Result, e.g. MemoryChecker once usage reaches its
	// critical threshold.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a Checker did not return before the
	// Aggregator's configured Timeout elapsed.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates Check was called with a name that
	// has no registered Checker, e.g. one unregistered concurrently
	// with the lookup.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoCheckers names the condition of an Aggregator with nothing
	// registered. The Aggregator itself does not return it: with no
	// results, its overall status is StatusHealthy.
	ErrNoCheckers = errors.New("health: no checkers registered")
)
