package propagation

import (
	"context"
	"errors"
	"testing"
)

func TestEmptyPropagatorIsIdentity(t *testing.T) {
	ctx := context.Background()
	p := EmptyPropagator{}
	if got := p.Apply(ctx, p.Retrieve(ctx)); got != ctx {
		t.Fatal("EmptyPropagator.Apply should return the same context unchanged")
	}
	if got := p.Clear(ctx); got != ctx {
		t.Fatal("EmptyPropagator.Clear should return the same context unchanged")
	}
}

func TestCorrelationPropagatorRoundTrips(t *testing.T) {
	ctx, err := WithCorrelation(context.Background(), "k", "v")
	if err != nil {
		t.Fatalf("WithCorrelation: %v", err)
	}

	p := CorrelationPropagator{}
	captured := p.Retrieve(ctx)

	fresh := p.Apply(context.Background(), captured)
	got, ok := Correlation(fresh, "k")
	if !ok || got != "v" {
		t.Fatalf("Correlation(fresh, k) = (%q, %v), want (v, true)", got, ok)
	}
}

func TestCorrelationPropagatorClear(t *testing.T) {
	ctx, err := WithCorrelation(context.Background(), "k", "v")
	if err != nil {
		t.Fatalf("WithCorrelation: %v", err)
	}

	cleared := CorrelationPropagator{}.Clear(ctx)
	if _, ok := Correlation(cleared, "k"); ok {
		t.Fatal("expected correlation to be absent after Clear")
	}
}

func TestDecorateFuncPropagatesAcrossBoundary(t *testing.T) {
	submitter, err := WithCorrelation(context.Background(), "k", "v")
	if err != nil {
		t.Fatalf("WithCorrelation: %v", err)
	}

	var observed string
	task := DecorateFunc(submitter, []Propagator{CorrelationPropagator{}}, func(taskCtx context.Context) error {
		observed, _ = Correlation(taskCtx, "k")
		return nil
	})

	// Run the decorated task against an unrelated worker context.
	if err := task(context.Background()); err != nil {
		t.Fatalf("task: %v", err)
	}
	if observed != "v" {
		t.Fatalf("observed correlation = %q, want v", observed)
	}
}

func TestDecorateFuncClearsAfterFailure(t *testing.T) {
	submitter, err := WithCorrelation(context.Background(), "k", "v")
	if err != nil {
		t.Fatalf("WithCorrelation: %v", err)
	}

	boom := errors.New("boom")
	task := DecorateFunc(submitter, []Propagator{CorrelationPropagator{}}, func(context.Context) error {
		return boom
	})

	if err := task(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("task returned %v, want %v", err, boom)
	}
}

func TestDecorateListRunsBody(t *testing.T) {
	submitter, err := WithCorrelation(context.Background(), "k", "v")
	if err != nil {
		t.Fatalf("WithCorrelation: %v", err)
	}

	var ran bool
	task := DecorateList(submitter, []Propagator{CorrelationPropagator{}}, func(context.Context) {
		ran = true
	})
	task(context.Background())

	if !ran {
		t.Fatal("expected the decorated body to run")
	}
}
