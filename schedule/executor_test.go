package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRejectsInvalidCorePoolSize(t *testing.T) {
	if _, err := New(Config{CorePoolSize: 0}); err == nil {
		t.Fatal("expected an error for CorePoolSize < 1")
	}
}

func TestScheduleRunsOnceAfterDelay(t *testing.T) {
	e, err := New(Config{CorePoolSize: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	var ran atomic.Bool
	done := make(chan struct{})
	_, err = e.Schedule(context.Background(), func(context.Context) error {
		ran.Store(true)
		close(done)
		return nil
	}, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run in time")
	}
	if !ran.Load() {
		t.Fatal("expected task to have run")
	}
}

func TestScheduleCancelBeforeRunSuppressesExecution(t *testing.T) {
	e, err := New(Config{CorePoolSize: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	var ran atomic.Bool
	handle, err := e.Schedule(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	}, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if !handle.Cancel() {
		t.Fatal("expected the first Cancel call to succeed")
	}
	if handle.Cancel() {
		t.Fatal("expected a second Cancel call to report false")
	}

	time.Sleep(400 * time.Millisecond)
	if ran.Load() {
		t.Fatal("cancelled task should not have run")
	}
}

func TestScheduleAtFixedRateRunsRepeatedly(t *testing.T) {
	e, err := New(Config{CorePoolSize: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	var count atomic.Int64
	handle, err := e.ScheduleAtFixedRate(context.Background(), func(context.Context) error {
		count.Add(1)
		return nil
	}, 0, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("ScheduleAtFixedRate: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	handle.Cancel()

	if got := count.Load(); got < 3 {
		t.Fatalf("fixed-rate task ran %d times, want at least 3", got)
	}
}

func TestScheduleAtFixedRateNeverOverlaps(t *testing.T) {
	e, err := New(Config{CorePoolSize: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	handle, err := e.ScheduleAtFixedRate(context.Background(), func(context.Context) error {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}, 0, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("ScheduleAtFixedRate: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	handle.Cancel()

	if overlapped.Load() {
		t.Fatal("expected successive fixed-rate runs to never overlap")
	}
}

func TestScheduleWithFixedDelayWaitsAfterCompletion(t *testing.T) {
	e, err := New(Config{CorePoolSize: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	var count atomic.Int64
	handle, err := e.ScheduleWithFixedDelay(context.Background(), func(context.Context) error {
		count.Add(1)
		return nil
	}, 0, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("ScheduleWithFixedDelay: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	handle.Cancel()

	if got := count.Load(); got < 2 {
		t.Fatalf("fixed-delay task ran %d times, want at least 2", got)
	}
}

func TestShutdownRejectsFurtherSubmissions(t *testing.T) {
	e, err := New(Config{CorePoolSize: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := e.Schedule(context.Background(), func(context.Context) error { return nil }, 0); err == nil {
		t.Fatal("expected submission after Shutdown to fail")
	}
}

func TestWorkerNameAvailableInsideTask(t *testing.T) {
	e, err := New(Config{CorePoolSize: 1, ThreadNamePrefix: "test-worker"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Shutdown(context.Background())

	done := make(chan string, 1)
	_, err = e.Schedule(context.Background(), func(ctx context.Context) error {
		name, _ := WorkerName(ctx)
		done <- name
		return nil
	}, 0)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case name := <-done:
		if name != "test-worker-1" {
			t.Fatalf("worker name = %q, want test-worker-1", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run in time")
	}
}
