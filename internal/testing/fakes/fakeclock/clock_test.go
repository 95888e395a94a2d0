package fakeclock

import (
	"testing"
	"time"
)

func TestClock_AdvanceAndSet(t *testing.T) {
	initial := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(initial)

	if got := c.Now(); !got.Equal(initial) {
		t.Fatalf("Now() = %v, want %v", got, initial)
	}

	c.Advance(90 * time.Second)
	if got, want := c.Now(), initial.Add(90*time.Second); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}

	newTime := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	c.Set(newTime)
	if got := c.Now(); !got.Equal(newTime) {
		t.Errorf("Now() after Set = %v, want %v", got, newTime)
	}
}
