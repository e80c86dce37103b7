package stopwatch

import (
	"testing"
	"time"

	"github.com/corevane/resilicore/clock"
)

func TestElapsedTracksManualClock(t *testing.T) {
	c := clock.NewManual(0, 0)
	sw := Start(c)

	if got := sw.Elapsed(); got != 0 {
		t.Fatalf("Elapsed() = %v, want 0", got)
	}

	c.Advance(int64(150 * time.Millisecond))
	if got := sw.Elapsed(); got != 150*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want 150ms", got)
	}

	c.Advance(int64(50 * time.Millisecond))
	if got := sw.Elapsed(); got != 200*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want 200ms", got)
	}
}

func TestElapsedRepeatable(t *testing.T) {
	c := clock.NewManual(0, 0)
	sw := Start(c)
	c.Advance(int64(10 * time.Millisecond))

	first := sw.Elapsed()
	second := sw.Elapsed()
	if first != second {
		t.Fatalf("Elapsed() not stable across calls: %v != %v", first, second)
	}
}
