package propagation

import "context"

// DecorateFunc captures each propagator's value out of ctx once, at
// submission time, and returns a task that applies every propagator
// (in slice order) before running body and clears every propagator (in
// reverse order) afterward, regardless of whether body returns an
// error. Each propagator's own apply/clear pair is always correctly
// matched; overall ordering across distinct propagators when several
// are combined is not guaranteed to reflect any particular
// caller-visible sequencing beyond that.
func DecorateFunc(ctx context.Context, propagators []Propagator, body func(context.Context) error) func(context.Context) error {
	captured := make([]any, len(propagators))
	for i, p := range propagators {
		captured[i] = p.Retrieve(ctx)
	}

	return func(taskCtx context.Context) error {
		decorated := taskCtx
		for i, p := range propagators {
			decorated = p.Apply(decorated, captured[i])
		}

		defer func() {
			for i := len(propagators) - 1; i >= 0; i-- {
				decorated = propagators[i].Clear(decorated)
			}
		}()

		return body(decorated)
	}
}

// DecorateList is DecorateFunc for a task with no return value, useful
// for fire-and-forget scheduling.
func DecorateList(ctx context.Context, propagators []Propagator, body func(context.Context)) func(context.Context) {
	wrapped := DecorateFunc(ctx, propagators, func(taskCtx context.Context) error {
		body(taskCtx)
		return nil
	})
	return func(taskCtx context.Context) { _ = wrapped(taskCtx) }
}
