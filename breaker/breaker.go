// Package breaker implements a circuit breaker whose Closed-to-Open
// decision is driven by a sliding-window failure-rate and
// slow-call-rate snapshot rather than a bare failure counter, and
// whose Open-to-HalfOpen wait is paced by a configurable backoff
// function instead of a fixed timeout. While half-open, the outcome of
// each probe decides: a failed or slow probe reopens the circuit, and
// the circuit closes once the permitted number of probes has been
// admitted and the last one to finish succeeded.
package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/corevane/resilicore/clock"
	"github.com/corevane/resilicore/corefault"
	"github.com/corevane/resilicore/event"
	"github.com/corevane/resilicore/interval"
	"github.com/corevane/resilicore/metrics"
)

// State is a circuit breaker's lifecycle state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures a CircuitBreaker.
type Config struct {
	// FailureRateThreshold, in percent, opens the circuit once reached
	// or exceeded. Default: 50.
	FailureRateThreshold float64

	// SlowCallRateThreshold, in percent, opens the circuit once reached
	// or exceeded. Default: 100 (disabled in practice unless lowered).
	SlowCallRateThreshold float64

	// SlowCallDurationThreshold marks a call slow if its duration meets
	// or exceeds it. Default: never slow (MaxInt64 duration).
	SlowCallDurationThreshold time.Duration

	// MinimumNumberOfCalls is the number of calls a window must
	// contain before its rates are evaluated at all. Default: 1.
	MinimumNumberOfCalls int

	// PermittedCallsInHalfOpen is the number of probe calls admitted
	// in one half-open period; further calls get ErrOpen until the
	// circuit closes or reopens. Default: 1.
	PermittedCallsInHalfOpen int

	// Window backs the failure/slow-call rate decision. Defaults to a
	// 100-sample count-based window if nil.
	Window metrics.Window

	// WaitInterval computes the Open->HalfOpen wait as a function of
	// how many times the circuit has opened. Defaults to a fixed 60s
	// wait.
	WaitInterval interval.Func

	// IsFailure classifies an operation's error as a breaker failure.
	// Default: any non-nil error.
	IsFailure func(err error) bool

	// Clock supplies monotonic time. Defaults to clock.System.
	Clock clock.Clock

	// OnStateChange, if set, is also invoked synchronously on every
	// transition in addition to the event.Processor subscribers.
	OnStateChange func(from, to State)
}

func (c *Config) applyDefaults() {
	if c.FailureRateThreshold <= 0 {
		c.FailureRateThreshold = 50
	}
	if c.SlowCallRateThreshold <= 0 {
		c.SlowCallRateThreshold = 100
	}
	if c.SlowCallDurationThreshold <= 0 {
		c.SlowCallDurationThreshold = time.Duration(1<<63 - 1)
	}
	if c.MinimumNumberOfCalls <= 0 {
		c.MinimumNumberOfCalls = 1
	}
	if c.PermittedCallsInHalfOpen <= 0 {
		c.PermittedCallsInHalfOpen = 1
	}
	if c.Window == nil {
		c.Window = metrics.NewCountBasedWindow(100)
	}
	if c.WaitInterval == nil {
		c.WaitInterval = interval.Fixed(60 * time.Second)
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool { return err != nil }
	}
	if c.Clock == nil {
		c.Clock = clock.System
	}
}

// StateChangeEvent is published whenever a CircuitBreaker transitions.
type StateChangeEvent struct {
	Name string
	From State
	To   State
}

func (StateChangeEvent) TypeName() string { return "breaker.state_change" }

// CircuitBreaker guards calls behind a Closed/Open/HalfOpen state
// machine driven by a metrics.Window snapshot.
type CircuitBreaker struct {
	name   string
	config Config

	mu            sync.Mutex
	state         State
	halfOpenCount int
	openedAtNS    int64
	openCount     int

	events *event.Processor[StateChangeEvent]
}

// New creates a CircuitBreaker named name.
func New(name string, config Config) *CircuitBreaker {
	config.applyDefaults()
	return &CircuitBreaker{
		name:   name,
		config: config,
		events: event.NewProcessor[StateChangeEvent](),
	}
}

// ErrOpen is returned by Execute while the circuit is open or the
// half-open probe budget is exhausted.
var ErrOpen = corefault.New(corefault.Validation, "breaker.CircuitBreaker.Execute", "circuit breaker is open")

// Name returns the breaker's configured name.
func (cb *CircuitBreaker) Name() string { return cb.name }

// State returns the current state, resolving an elapsed Open wait into
// HalfOpen first.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// OnStateChange subscribes c to every future state transition.
func (cb *CircuitBreaker) OnStateChange(c event.Consumer[StateChangeEvent]) {
	cb.events.OnEvent(c)
}

// Snapshot returns the current failure/slow-call rates from the
// breaker's backing window.
func (cb *CircuitBreaker) Snapshot() metrics.Snapshot {
	return cb.config.Window.Snapshot()
}

// Execute runs op if the circuit permits it, then records the outcome.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	start := cb.config.Clock.MonotonicTimeNS()
	err := op(ctx)
	duration := time.Duration(cb.config.Clock.MonotonicTimeNS() - start)

	cb.afterCall(duration, err)
	return err
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case Open:
		return ErrOpen
	case HalfOpen:
		if cb.halfOpenCount >= cb.config.PermittedCallsInHalfOpen {
			return ErrOpen
		}
		cb.halfOpenCount++
	}
	return nil
}

func (cb *CircuitBreaker) afterCall(duration time.Duration, err error) {
	outcome := classify(duration, err, cb.config.SlowCallDurationThreshold, cb.config.IsFailure)
	snap := cb.config.Window.Record(duration, outcome)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	unhealthy := snap.TotalCalls >= uint64(cb.config.MinimumNumberOfCalls) &&
		(snap.FailureRatePct >= cb.config.FailureRateThreshold || snap.SlowCallRatePct >= cb.config.SlowCallRateThreshold)

	switch cb.state {
	case Closed:
		if unhealthy {
			cb.transitionLocked(Open)
		}
	case HalfOpen:
		if outcome != metrics.Success {
			cb.transitionLocked(Open)
		} else if cb.halfOpenCount >= cb.config.PermittedCallsInHalfOpen {
			cb.transitionLocked(Closed)
		}
	}
}

func classify(duration time.Duration, err error, slowThreshold time.Duration, isFailure func(error) bool) metrics.Outcome {
	failed := isFailure(err)
	slow := duration >= slowThreshold
	switch {
	case failed && slow:
		return metrics.SlowError
	case failed:
		return metrics.Error
	case slow:
		return metrics.SlowSuccess
	default:
		return metrics.Success
	}
}

// currentStateLocked must be called with cb.mu held. It resolves an
// elapsed Open wait into HalfOpen.
func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == Open {
		wait, err := cb.config.WaitInterval(cb.openCount)
		if err != nil {
			wait = 60 * time.Second
		}
		if cb.config.Clock.MonotonicTimeNS()-cb.openedAtNS >= int64(wait) {
			cb.transitionLocked(HalfOpen)
		}
	}
	return cb.state
}

func (cb *CircuitBreaker) transitionLocked(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	switch to {
	case Open:
		cb.openedAtNS = cb.config.Clock.MonotonicTimeNS()
		cb.openCount++
		cb.halfOpenCount = 0
	case HalfOpen:
		cb.halfOpenCount = 0
	case Closed:
		cb.openCount = 0
		cb.halfOpenCount = 0
	}

	cb.events.Process(StateChangeEvent{Name: cb.name, From: from, To: to})
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

// Reset forces the circuit back to Closed and clears its transition
// history.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transitionLocked(Closed)
}
