package model

import (
	"fmt"
	"math"
	"time"
)

// StateKind names the active TimerState variant.
type StateKind string

const (
	KindStopped StateKind = "stopped"
	KindActive  StateKind = "active"
	KindPaused  StateKind = "paused"
)

// TimerState is the countdown state. Exactly one of Stopped, Active or Paused.
type TimerState interface {
	Kind() StateKind
	isTimerState()
}

// Stopped means no timer is running.
type Stopped struct{}

// Active counts down toward a fixed wall-clock instant.
type Active struct {
	EndAt time.Time
}

// Paused holds the frozen remaining duration.
type Paused struct {
	Remaining time.Duration
}

func (Stopped) Kind() StateKind { return KindStopped }
func (Active) Kind() StateKind  { return KindActive }
func (Paused) Kind() StateKind  { return KindPaused }

func (Stopped) isTimerState() {}
func (Active) isTimerState()  {}
func (Paused) isTimerState()  {}

// KindOf returns the kind of state, treating nil as stopped.
func KindOf(state TimerState) StateKind {
	if state == nil {
		return KindStopped
	}
	return state.Kind()
}

// TimerRecord is the durable representation of the current timer.
// Duration is fixed when the timer starts and never changes afterwards.
type TimerRecord struct {
	Duration time.Duration
	State    TimerState
}

// Valid reports whether the record describes a running or paused timer.
func (record TimerRecord) Valid() bool {
	if record.Duration <= 0 {
		return false
	}
	switch state := record.State.(type) {
	case Active:
		return !state.EndAt.IsZero()
	case Paused:
		return state.Remaining > 0
	case Stopped, nil:
		return false
	default:
		return false
	}
}

// MinutesToDuration converts a fractional minute count to a duration.
func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// ProgressFraction returns remaining/total clamped to [0,1].
// A non-positive total yields 0.
func ProgressFraction(remaining, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	fraction := float64(remaining) / float64(total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// FormatRemaining renders a duration as "minutes:seconds.milliseconds",
// for example 65.5s becomes "1:5.500".
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	millis := int64(math.Round(remaining.Seconds() * 1000))
	minutes := millis / 60000
	seconds := float64(millis%60000) / 1000
	return fmt.Sprintf("%d:%.3f", minutes, seconds)
}

// FormatWholeMinutes renders the idle preview shown before a timer starts.
func FormatWholeMinutes(minutes float64) string {
	return fmt.Sprintf("%d:00", int(minutes))
}
