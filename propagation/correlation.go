package propagation

import (
	"context"

	"go.opentelemetry.io/otel/baggage"
)

// CorrelationPropagator bridges the well-known correlation mapping to
// OpenTelemetry Baggage, a string-to-string map already carried on a
// context — the same shape as an MDC-style thread-local map, just
// expressed as an immutable context value instead of mutable
// thread-local state.
type CorrelationPropagator struct{}

func (CorrelationPropagator) Retrieve(ctx context.Context) any {
	return baggage.FromContext(ctx)
}

// Apply installs value (expected to be a baggage.Baggage captured by
// Retrieve) onto ctx. A value of any other type is a no-op.
func (CorrelationPropagator) Apply(ctx context.Context, value any) context.Context {
	b, ok := value.(baggage.Baggage)
	if !ok {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, b)
}

func (CorrelationPropagator) Clear(ctx context.Context) context.Context {
	return baggage.ContextWithoutBaggage(ctx)
}

// WithCorrelation returns a context carrying key=value in its
// correlation baggage, alongside any baggage already present.
func WithCorrelation(ctx context.Context, key, value string) (context.Context, error) {
	member, err := baggage.NewMember(key, value)
	if err != nil {
		return ctx, err
	}
	existing := baggage.FromContext(ctx)
	updated, err := existing.SetMember(member)
	if err != nil {
		return ctx, err
	}
	return baggage.ContextWithBaggage(ctx, updated), nil
}

// Correlation reads key out of ctx's correlation baggage, reporting
// whether it was present.
func Correlation(ctx context.Context, key string) (string, bool) {
	member := baggage.FromContext(ctx).Member(key)
	if member.Key() == "" {
		return "", false
	}
	return member.Value(), true
}
