// Package corefault defines the shared error taxonomy used across
// resilicore: validation failures, configuration lookups, factory
// failures, and swallowed user-callback failures.
package corefault

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// Validation means an argument was out of range or otherwise
	// malformed. Raised synchronously; state is unchanged.
	Validation Kind = iota

	// ConfigurationNotFound means a named lookup in a configuration
	// table failed. State is unchanged.
	ConfigurationNotFound

	// Instantiation means a factory supplied by the caller failed.
	// The underlying cause, if any, is wrapped.
	Instantiation

	// UserCallback means a subscribed consumer or user-supplied
	// function raised. UserCallback errors from event consumers are
	// swallowed by the event processor; this kind exists so a caller
	// that does propagate one (e.g. a failing backoff function) can
	// still classify it uniformly.
	UserCallback
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case ConfigurationNotFound:
		return "configuration_not_found"
	case Instantiation:
		return "instantiation"
	case UserCallback:
		return "user_callback"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by every resilicore package for
// the four failure kinds above.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op names the operation that failed, e.g. "registry.ComputeIfAbsent".
	Op string

	// Msg is a short human-readable description.
	Msg string

	// Err is the wrapped cause, if any.
	Err error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause for errors.Is/errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Kind, treating
// a blank Op or Msg on target as a wildcard for that field. This lets
// callers build either a broad Kind-only sentinel or a narrower
// Op/Msg-qualified one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	if t.Msg != "" && t.Msg != e.Msg {
		return false
	}
	return true
}

// New builds a new *Error.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds a new *Error wrapping cause.
func Wrap(kind Kind, op, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: cause}
}
