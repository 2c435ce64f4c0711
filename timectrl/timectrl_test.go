package timectrl

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestControllerStartUpdatesNow(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	c := New(start, 5*time.Millisecond, Accelerated)

	done := c.Start(15 * time.Millisecond)
	<-done

	expected := start.Add(15 * time.Millisecond)
	if got := c.Now(); !got.Equal(expected) {
		t.Fatalf("Now() = %v, want %v", got, expected)
	}
}

func TestControllerListenersSeeIncreasingTimes(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	c := New(start, time.Second, Accelerated)

	var seen []time.Time
	c.AddListener(func(simTime time.Time) {
		seen = append(seen, simTime)
	})

	<-c.Start(5 * time.Second)

	if len(seen) != 5 {
		t.Fatalf("listener fired %d times, want 5", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if !seen[i].After(seen[i-1]) {
			t.Errorf("tick %d time %v not after %v", i, seen[i], seen[i-1])
		}
	}
	if want := start.Add(time.Second); !seen[0].Equal(want) {
		t.Errorf("first tick = %v, want %v", seen[0], want)
	}
}

func TestControllerIndefiniteAcceleratedRunIsPaced(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	c := New(start, 50*time.Millisecond, Accelerated)

	var ticks atomic.Int32
	c.AddListener(func(time.Time) {
		ticks.Add(1)
	})

	c.Start(0)
	time.Sleep(120 * time.Millisecond)

	// An unpaced loop would rack up thousands of ticks in this window;
	// wall-clock pacing at 50ms allows a small handful.
	if n := ticks.Load(); n < 1 || n > 5 {
		t.Fatalf("indefinite run fired %d ticks in 120ms with a 50ms tick", n)
	}
}
