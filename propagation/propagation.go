// Package propagation carries submission-time ambient state across a
// task boundary. Where a thread-local bridge would be needed in a
// language without first-class structured concurrency, Go's
// context.Context already is the structured-decoration mechanism:
// each Propagator captures a value from the submitting context and
// produces a new context wrapping it around a task body.
package propagation

import "context"

// Propagator captures ambient state from a context at submission time
// and re-applies it around a task body running in a possibly different
// goroutine.
type Propagator interface {
	// Retrieve reads this propagator's value out of ctx.
	Retrieve(ctx context.Context) any

	// Apply returns a new context carrying value.
	Apply(ctx context.Context, value any) context.Context

	// Clear returns a new context with this propagator's ambient state
	// removed. Because Go contexts are immutable, Clear never affects
	// the submitting context — it exists for symmetry with the
	// retrieve/apply/clear contract and for adapters bridging to
	// genuinely mutable ambient stores.
	Clear(ctx context.Context) context.Context
}

// EmptyPropagator is the no-op Propagator, used as the identity element
// when composing a propagator list.
type EmptyPropagator struct{}

func (EmptyPropagator) Retrieve(context.Context) any { return nil }

func (EmptyPropagator) Apply(ctx context.Context, _ any) context.Context { return ctx }

func (EmptyPropagator) Clear(ctx context.Context) context.Context { return ctx }
