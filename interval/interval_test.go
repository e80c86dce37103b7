package interval

import (
	"errors"
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	f := Fixed(500 * time.Millisecond)
	for attempt := 1; attempt <= 3; attempt++ {
		got, err := f(attempt)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
		if got != 500*time.Millisecond {
			t.Errorf("attempt %d: got %v, want 500ms", attempt, got)
		}
	}
}

func TestFixedRejectsInvalidAttempt(t *testing.T) {
	f := Fixed(500 * time.Millisecond)
	if _, err := f(0); !errors.Is(err, ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt, got %v", err)
	}
}

func TestFixedRejectsInvalidInterval(t *testing.T) {
	f := Fixed(0)
	if _, err := f(1); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

// TestExponentialCappedScenario mirrors spec scenario 4: attempts 1..7
// of ofExponentialBackoff(500ms, 2.0, 10000ms) yield
// 500, 1000, 2000, 4000, 8000, 10000, 10000.
func TestExponentialCappedScenario(t *testing.T) {
	f := ExponentialCapped(500*time.Millisecond, 2.0, 10*time.Second)
	want := []time.Duration{
		500 * time.Millisecond,
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		10000 * time.Millisecond,
		10000 * time.Millisecond,
	}
	for i, w := range want {
		attempt := i + 1
		got, err := f(attempt)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
		if got != w {
			t.Errorf("attempt %d: got %v, want %v", attempt, got, w)
		}
	}
}

func TestExponentialMonotonic(t *testing.T) {
	f := Exponential(100*time.Millisecond, 1.5)
	prev, err := f(1)
	if err != nil {
		t.Fatal(err)
	}
	for attempt := 2; attempt <= 10; attempt++ {
		cur, err := f(attempt)
		if err != nil {
			t.Fatal(err)
		}
		if cur < prev {
			t.Fatalf("attempt %d: delay decreased: %v -> %v", attempt, prev, cur)
		}
		prev = cur
	}
}

func TestExponentialCappedNeverExceedsCap(t *testing.T) {
	cap := 5 * time.Second
	f := ExponentialCapped(1*time.Second, 3.0, cap)
	for attempt := 1; attempt <= 20; attempt++ {
		got, err := f(attempt)
		if err != nil {
			t.Fatal(err)
		}
		if got > cap {
			t.Fatalf("attempt %d: delay %v exceeds cap %v", attempt, got, cap)
		}
	}
}

func TestRandomizedBounds(t *testing.T) {
	interval := 1 * time.Second
	factor := 0.5
	f := Randomized(interval, factor)

	lo := time.Duration(float64(interval) * (1 - factor))
	hi := time.Duration(float64(interval) * (1 + factor))
	if lo < 1 {
		lo = 1
	}

	for i := 0; i < 200; i++ {
		got, err := f(1)
		if err != nil {
			t.Fatal(err)
		}
		if got < lo || got > hi {
			t.Fatalf("iteration %d: %v out of bounds [%v, %v]", i, got, lo, hi)
		}
	}
}

func TestRandomizedRejectsFactorOutOfRange(t *testing.T) {
	f := Randomized(time.Second, 1.5)
	if _, err := f(1); !errors.Is(err, ErrInvalidRandomizationFactor) {
		t.Fatalf("expected ErrInvalidRandomizationFactor, got %v", err)
	}
}

func TestCustomBackoffAppliesIteratively(t *testing.T) {
	double := func(d time.Duration) time.Duration { return d * 2 }
	f := CustomBackoff(100*time.Millisecond, double)

	want := []time.Duration{100, 200, 400, 800}
	for i, w := range want {
		attempt := i + 1
		got, err := f(attempt)
		if err != nil {
			t.Fatal(err)
		}
		if got != w*time.Millisecond {
			t.Errorf("attempt %d: got %v, want %v", attempt, got, w*time.Millisecond)
		}
	}
}

func TestBiasedIgnoresResult(t *testing.T) {
	f := Biased(Fixed(200 * time.Millisecond))

	got, err := f(1, Success("ok"))
	if err != nil {
		t.Fatal(err)
	}
	if got != 200*time.Millisecond {
		t.Fatalf("got %v, want 200ms", got)
	}

	got, err = f(1, Failure(errors.New("boom")))
	if err != nil {
		t.Fatal(err)
	}
	if got != 200*time.Millisecond {
		t.Fatalf("got %v, want 200ms (outcome should be ignored)", got)
	}
}

func TestExponentialRandomizedCappedBounds(t *testing.T) {
	cap := 2 * time.Second
	f := ExponentialRandomizedCapped(500*time.Millisecond, 2.0, 0.5, cap)
	for attempt := 1; attempt <= 10; attempt++ {
		got, err := f(attempt)
		if err != nil {
			t.Fatal(err)
		}
		if got > cap {
			t.Fatalf("attempt %d: %v exceeds cap %v", attempt, got, cap)
		}
		if got < 1 {
			t.Fatalf("attempt %d: %v below minimum 1ns", attempt, got)
		}
	}
}
