package interval

import "github.com/corevane/resilicore/corefault"

// Sentinel errors matching by Kind only, for errors.Is comparisons
// against any validation failure raised by this package.
var (
	// ErrInvalidAttempt matches any *corefault.Error raised because an
	// attempt number was < 1.
	ErrInvalidAttempt = corefault.New(corefault.Validation, "", "attempt must be >= 1")

	// ErrInvalidInterval matches any *corefault.Error raised because an
	// interval was < 1ns.
	ErrInvalidInterval = corefault.New(corefault.Validation, "", "interval must be >= 1ns")

	// ErrInvalidRandomizationFactor matches any *corefault.Error raised
	// because a randomization factor fell outside [0,1].
	ErrInvalidRandomizationFactor = corefault.New(corefault.Validation, "", "randomization factor must be in [0,1]")
)
