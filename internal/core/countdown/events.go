package countdown

import (
	"time"

	"countdown/internal/core/model"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	Kind      model.StateKind
	Remaining time.Duration
	Progress  float64
	Display   string
	At        time.Time
}

// View is the observable state consumed by presentation layers.
type View struct {
	State             model.TimerState
	Kind              model.StateKind
	Display           string
	Progress          float64
	Remaining         time.Duration
	Duration          time.Duration
	CompletionPending bool
}
