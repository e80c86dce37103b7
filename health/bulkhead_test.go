package health

import (
	"context"
	"testing"

	"github.com/corevane/resilicore/bulkhead"
)

func TestBulkheadCheckerReportsHealthyWithFreeCapacity(t *testing.T) {
	b := bulkhead.New(bulkhead.Config{MaxConcurrent: 2})
	checker := NewBulkheadChecker("workers", b)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v, want StatusHealthy", result.Status)
	}

	details, ok := result.Details.(BulkheadDetails)
	if !ok {
		t.Fatalf("Details = %#v, want BulkheadDetails", result.Details)
	}
	if details.MaxConcurrent != 2 {
		t.Errorf("Details.MaxConcurrent = %v, want 2", details.MaxConcurrent)
	}
}

func TestBulkheadCheckerReportsDegradedAtCapacity(t *testing.T) {
	b := bulkhead.New(bulkhead.Config{MaxConcurrent: 1})
	if err := b.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer b.Release()

	checker := NewBulkheadChecker("workers", b)
	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Fatalf("Status = %v, want StatusDegraded", result.Status)
	}

	details := result.Details.(BulkheadDetails)
	if details.Active != 1 {
		t.Errorf("Details.Active = %v, want 1", details.Active)
	}
}

func TestBulkheadCheckerNameMatchesConstructorArgument(t *testing.T) {
	checker := NewBulkheadChecker("workers-bulkhead", bulkhead.New(bulkhead.Config{}))
	if checker.Name() != "workers-bulkhead" {
		t.Fatalf("Name() = %q, want %q", checker.Name(), "workers-bulkhead")
	}
}
