package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/corevane/resilicore/bulkhead"
)

func TestMiddlewareWrapPropagatesResult(t *testing.T) {
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})

	wrapped := mw.Wrap(ComponentMeta{Component: "breaker", Name: "orders"}, func(context.Context) error {
		return nil
	})

	if err := wrapped(context.Background()); err != nil {
		t.Fatalf("wrapped(): %v", err)
	}
}

func TestMiddlewareWrapPropagatesError(t *testing.T) {
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})
	boom := errors.New("boom")

	wrapped := mw.Wrap(ComponentMeta{Component: "retrier"}, func(context.Context) error {
		return boom
	})

	if err := wrapped(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestMiddlewareFromObserverBuildsUsableMiddleware(t *testing.T) {
	mw, err := MiddlewareFromObserver(NoOp())
	if err != nil {
		t.Fatalf("MiddlewareFromObserver: %v", err)
	}

	wrapped := mw.Wrap(ComponentMeta{Component: "timeout"}, func(context.Context) error { return nil })
	if err := wrapped(context.Background()); err != nil {
		t.Fatalf("wrapped(): %v", err)
	}
}

func TestMiddlewareWrapClassifiesBulkheadRejectionSeparately(t *testing.T) {
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})

	wrapped := mw.Wrap(ComponentMeta{Component: "bulkhead"}, func(context.Context) error {
		return bulkhead.ErrFull
	})

	if err := wrapped(context.Background()); !errors.Is(err, bulkhead.ErrFull) {
		t.Fatalf("got %v, want ErrFull", err)
	}
}

func TestMiddlewareRecordRejectionDoesNotPanic(t *testing.T) {
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})
	mw.RecordRejection(context.Background(), ComponentMeta{Component: "bulkhead"}, errors.New("full"))
}
