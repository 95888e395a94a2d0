package countdown

import (
	"time"

	"countdown/internal/core/model"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=countdown_test

// Clock supplies the current wall-clock instant.
type Clock interface {
	Now() time.Time
}

// Handle cancels a periodic schedule. Stop must be safe to call more than once.
type Handle interface {
	Stop()
}

// Scheduler invokes a callback repeatedly until the returned handle is stopped.
type Scheduler interface {
	Schedule(interval time.Duration, callback func()) Handle
}

// Notifier schedules one-shot user alerts.
type Notifier interface {
	ScheduleOneShot(delay time.Duration, title, message string) (string, error)
	CancelAll()
}

// Repository persists the single active timer record.
type Repository interface {
	Save(record model.TimerRecord) error
	Load() (model.TimerRecord, bool, error)
	Clear() error
}

// Dependencies are the engine collaborators. Nil fields get defaults.
type Dependencies struct {
	Clock      Clock
	Scheduler  Scheduler
	Notifier   Notifier
	Repository Repository
}

func (deps Dependencies) withDefaults() Dependencies {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TickerScheduler{}
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Repository == nil {
		deps.Repository = noopRepository{}
	}
	return deps
}

type noopNotifier struct{}

func (noopNotifier) ScheduleOneShot(time.Duration, string, string) (string, error) { return "", nil }
func (noopNotifier) CancelAll()                                                  {}

type noopRepository struct{}

func (noopRepository) Save(model.TimerRecord) error            { return nil }
func (noopRepository) Load() (model.TimerRecord, bool, error) { return model.TimerRecord{}, false, nil }
func (noopRepository) Clear() error                            { return nil }
