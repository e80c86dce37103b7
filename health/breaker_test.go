package health

import (
	"context"
	"errors"
	"testing"

	"github.com/corevane/resilicore/breaker"
	"github.com/corevane/resilicore/metrics"
)

func TestBreakerCheckerReportsHealthyWhenClosed(t *testing.T) {
	cb := breaker.New("orders", breaker.Config{Window: metrics.NewCountBasedWindow(10)})
	checker := NewBreakerChecker("orders", cb)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want StatusHealthy", result.Status)
	}
}

func TestBreakerCheckerReportsUnhealthyWhenOpen(t *testing.T) {
	cb := breaker.New("orders", breaker.Config{
		MinimumNumberOfCalls: 1,
		Window:               metrics.NewCountBasedWindow(1),
	})
	cb.Execute(context.Background(), func(context.Context) error { return errors.New("boom") })

	checker := NewBreakerChecker("orders", cb)
	result := checker.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Fatalf("Status = %v, want StatusUnhealthy", result.Status)
	}
	details, ok := result.Details.(BreakerDetails)
	if !ok {
		t.Fatalf("Details = %#v, want BreakerDetails", result.Details)
	}
	if details.State != "open" {
		t.Fatalf("Details.State = %v, want open", details.State)
	}
}

func TestBreakerCheckerNameMatchesConstructorArgument(t *testing.T) {
	cb := breaker.New("orders", breaker.Config{})
	checker := NewBreakerChecker("orders-breaker", cb)
	if checker.Name() != "orders-breaker" {
		t.Fatalf("Name() = %q, want %q", checker.Name(), "orders-breaker")
	}
}
