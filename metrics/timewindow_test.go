package metrics

import (
	"testing"
	"time"

	"github.com/corevane/resilicore/clock"
)

func TestTimeWindowEviction(t *testing.T) {
	clk := clock.NewManual(0, 0)
	w := NewTimeBasedWindow(2, clk)

	w.Record(100*time.Nanosecond, Error)

	clk.Advance(int64(time.Second))
	snap := w.Record(100*time.Nanosecond, Success)
	if snap.TotalCalls != 2 || snap.FailedCalls != 1 {
		t.Fatalf("at t=1: got total=%d failed=%d, want total=2 failed=1", snap.TotalCalls, snap.FailedCalls)
	}

	clk.Advance(int64(time.Second))
	snap = w.Snapshot()
	if snap.TotalCalls != 1 || snap.FailedCalls != 0 {
		t.Fatalf("at t=2: got total=%d failed=%d, want total=1 failed=0 (t=0 sample aged out)",
			snap.TotalCalls, snap.FailedCalls)
	}
}

func TestTimeWindowSameSecondAccumulates(t *testing.T) {
	clk := clock.NewManual(0, 0)
	w := NewTimeBasedWindow(5, clk)

	w.Record(10*time.Nanosecond, Success)
	snap := w.Record(20*time.Nanosecond, Error)

	if snap.TotalCalls != 2 {
		t.Fatalf("TotalCalls = %d, want 2", snap.TotalCalls)
	}
	if snap.TotalDuration != 30*time.Nanosecond {
		t.Fatalf("TotalDuration = %s, want 30ns", snap.TotalDuration)
	}
}

func TestTimeWindowSnapshotAloneTriggersSweep(t *testing.T) {
	clk := clock.NewManual(0, 0)
	w := NewTimeBasedWindow(1, clk)

	w.Record(1*time.Millisecond, Success)
	clk.Advance(int64(time.Second))

	snap := w.Snapshot()
	if snap.TotalCalls != 0 {
		t.Fatalf("TotalCalls = %d, want 0 after the window fully elapses", snap.TotalCalls)
	}
}

func TestTimeWindowLockFreeMatchesMutexVariant(t *testing.T) {
	mutexClk := clock.NewManual(0, 0)
	lockfreeClk := clock.NewManual(0, 0)
	mutexW := NewTimeBasedWindow(3, mutexClk)
	lockfreeW := NewTimeBasedWindowLockFree(3, lockfreeClk)

	type step struct {
		advance time.Duration
		d       time.Duration
		o       Outcome
	}
	steps := []step{
		{0, 100 * time.Nanosecond, Error},
		{time.Second, 200 * time.Nanosecond, Success},
		{time.Second, 300 * time.Nanosecond, SlowSuccess},
		{time.Second, 400 * time.Nanosecond, SlowError},
	}

	var mutexSnap, lockfreeSnap Snapshot
	for _, s := range steps {
		if s.advance > 0 {
			mutexClk.Advance(int64(s.advance))
			lockfreeClk.Advance(int64(s.advance))
		}
		mutexSnap = mutexW.Record(s.d, s.o)
		lockfreeSnap = lockfreeW.Record(s.d, s.o)
	}

	if mutexSnap != lockfreeSnap {
		t.Fatalf("lock-free time window diverged from mutex variant: %+v vs %+v", lockfreeSnap, mutexSnap)
	}
}
