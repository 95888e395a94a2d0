package countdown

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"countdown/internal/core/model"
)

// Engine is the countdown state machine. Commands and scheduled ticks are
// serialised by a single mutex; ticks from a cancelled schedule are dropped.
type Engine struct {
	mu         sync.Mutex
	config     model.EngineConfig
	clock      Clock
	scheduler  Scheduler
	notifier   Notifier
	repository Repository
	logger     *slog.Logger

	state             model.TimerState
	duration          time.Duration
	remaining         time.Duration
	progress          float64
	display           string
	completionPending bool

	tick           Handle
	tickGeneration uint64
	ticksSuspended bool

	events []chan Event
	closed bool
}

// New creates an engine and restores any persisted timer.
func New(config model.EngineConfig, deps Dependencies) *Engine {
	deps = deps.withDefaults()
	engine := &Engine{
		config:     config.Normalized(),
		clock:      deps.Clock,
		scheduler:  deps.Scheduler,
		notifier:   deps.Notifier,
		repository: deps.Repository,
		logger:     slog.Default().With(slog.String("component", "countdown")),
		state:      model.Stopped{},
	}
	engine.resetDisplayLocked()

	engine.mu.Lock()
	engine.restoreLocked()
	engine.mu.Unlock()
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Snapshot returns the current observable state.
func (engine *Engine) Snapshot() View {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return View{
		State:             engine.state,
		Kind:              engine.state.Kind(),
		Display:           engine.display,
		Progress:          engine.progress,
		Remaining:         engine.remaining,
		Duration:          engine.duration,
		CompletionPending: engine.completionPending,
	}
}

// AcknowledgeCompletion consumes the completion flag.
func (engine *Engine) AcknowledgeCompletion() {
	engine.mu.Lock()
	engine.completionPending = false
	engine.mu.Unlock()
}

// Start begins a countdown of the given length. Ignored unless stopped.
func (engine *Engine) Start(minutes float64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	switch engine.state.(type) {
	case model.Stopped:
	case model.Active, model.Paused:
		return
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		engine.logger.Debug("ignoring start with invalid length", slog.Float64("minutes", minutes))
		return
	}
	duration := model.MinutesToDuration(minutes)
	if duration <= 0 {
		return
	}

	now := engine.clock.Now()
	engine.duration = duration
	engine.state = model.Active{EndAt: now.Add(duration)}
	engine.completionPending = false
	engine.setRemainingLocked(duration)

	engine.persistLocked()
	engine.scheduleTicksLocked()
	engine.scheduleNotificationLocked(duration)
	engine.emitStateLocked(now)
}

// Pause freezes an active countdown.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	var active model.Active
	switch state := engine.state.(type) {
	case model.Active:
		active = state
	case model.Stopped, model.Paused:
		return
	}

	now := engine.clock.Now()
	remaining := active.EndAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	engine.cancelTicksLocked()
	engine.notifier.CancelAll()
	engine.state = model.Paused{Remaining: remaining}
	engine.setRemainingLocked(remaining)

	engine.persistLocked()
	engine.emitStateLocked(now)
}

// Resume restarts a paused countdown from its frozen remaining time.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	var paused model.Paused
	switch state := engine.state.(type) {
	case model.Paused:
		paused = state
	case model.Stopped, model.Active:
		return
	}

	now := engine.clock.Now()
	engine.state = model.Active{EndAt: now.Add(paused.Remaining)}
	engine.setRemainingLocked(paused.Remaining)

	engine.persistLocked()
	engine.scheduleTicksLocked()
	engine.scheduleNotificationLocked(paused.Remaining)
	engine.emitStateLocked(now)
}

// Stop cancels the countdown and discards the persisted record.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	switch engine.state.(type) {
	case model.Stopped:
		return
	case model.Active, model.Paused:
	}

	engine.cancelTicksLocked()
	engine.notifier.CancelAll()
	engine.clearRecordLocked()
	engine.state = model.Stopped{}
	engine.resetDisplayLocked()
	engine.emitStateLocked(engine.clock.Now())
}

// PauseTickUpdates stops periodic refresh while the host is suspended.
// The timer state and persisted record are left untouched.
func (engine *Engine) PauseTickUpdates() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.ticksSuspended = true
	engine.cancelTicksLocked()
}

// ResumeTickUpdates recomputes the remaining time after host suspension and
// restarts periodic refresh. An end instant passed while suspended completes
// the timer immediately.
func (engine *Engine) ResumeTickUpdates() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.ticksSuspended = false
	switch state := engine.state.(type) {
	case model.Active:
		now := engine.clock.Now()
		remaining := state.EndAt.Sub(now)
		if remaining <= 0 {
			engine.completeLocked(now)
			return
		}
		engine.setRemainingLocked(remaining)
		engine.scheduleTicksLocked()
		engine.emitProgressLocked(now)
	case model.Stopped, model.Paused:
	}
}

// UpdateConfig replaces runtime settings. A running tick is restarted with
// the new interval; notification text applies to the next scheduled alert.
func (engine *Engine) UpdateConfig(config model.EngineConfig) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.config = config.Normalized()
	if engine.tick != nil {
		engine.scheduleTicksLocked()
	}
}

// Close stops ticking and closes observers. The persisted record is kept so
// the timer can be restored by the next engine.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.cancelTicksLocked()
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) restoreLocked() {
	record, ok, err := engine.repository.Load()
	if err != nil {
		engine.logger.Warn("discarding unreadable timer record", slog.String("error", err.Error()))
		engine.clearRecordLocked()
		return
	}
	if !ok {
		return
	}
	if !record.Valid() {
		engine.logger.Warn("discarding invalid timer record",
			slog.Duration("duration", record.Duration),
			slog.String("state", string(model.KindOf(record.State))),
		)
		engine.clearRecordLocked()
		return
	}

	engine.duration = record.Duration
	switch state := record.State.(type) {
	case model.Active:
		now := engine.clock.Now()
		remaining := state.EndAt.Sub(now)
		if remaining <= 0 {
			// The alert was due while we were gone; do not raise it again.
			engine.duration = 0
			engine.clearRecordLocked()
			return
		}
		engine.state = state
		engine.setRemainingLocked(remaining)
		engine.scheduleTicksLocked()
		engine.scheduleNotificationLocked(remaining)
	case model.Paused:
		engine.state = state
		engine.setRemainingLocked(state.Remaining)
	case model.Stopped:
	}
}

func (engine *Engine) onTick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if generation != engine.tickGeneration {
		return
	}

	switch state := engine.state.(type) {
	case model.Active:
		now := engine.clock.Now()
		remaining := state.EndAt.Sub(now)
		if remaining <= 0 {
			engine.completeLocked(now)
			return
		}
		engine.setRemainingLocked(remaining)
		engine.emitProgressLocked(now)
	case model.Stopped, model.Paused:
		engine.cancelTicksLocked()
	}
}

func (engine *Engine) completeLocked(now time.Time) {
	engine.cancelTicksLocked()
	engine.clearRecordLocked()
	engine.state = model.Stopped{}
	engine.completionPending = true
	engine.resetDisplayLocked()

	engine.emitLocked(Event{
		Type:    EventCompleted,
		Kind:    model.KindStopped,
		Display: engine.display,
		At:      now,
	})
	engine.emitStateLocked(now)
}

func (engine *Engine) scheduleTicksLocked() {
	engine.cancelTicksLocked()
	if engine.ticksSuspended || engine.closed {
		return
	}
	generation := engine.tickGeneration
	engine.tick = engine.scheduler.Schedule(engine.config.TickInterval, func() {
		engine.onTick(generation)
	})
}

func (engine *Engine) cancelTicksLocked() {
	if engine.tick != nil {
		engine.tick.Stop()
		engine.tick = nil
	}
	engine.tickGeneration++
}

func (engine *Engine) scheduleNotificationLocked(delay time.Duration) {
	engine.notifier.CancelAll()
	notification := engine.config.Notification
	id, err := engine.notifier.ScheduleOneShot(delay, notification.Title, notification.Message)
	if err != nil {
		engine.logger.Warn("schedule notification", slog.String("error", err.Error()))
		return
	}
	engine.logger.Debug("notification scheduled",
		slog.String("id", id),
		slog.Duration("delay", delay),
	)
}

func (engine *Engine) persistLocked() {
	record := model.TimerRecord{Duration: engine.duration, State: engine.state}
	if err := engine.repository.Save(record); err != nil {
		engine.logger.Warn("save timer record", slog.String("error", err.Error()))
	}
}

func (engine *Engine) clearRecordLocked() {
	if err := engine.repository.Clear(); err != nil {
		engine.logger.Warn("clear timer record", slog.String("error", err.Error()))
	}
}

func (engine *Engine) setRemainingLocked(remaining time.Duration) {
	if remaining < 0 {
		remaining = 0
	}
	engine.remaining = remaining
	engine.progress = model.ProgressFraction(remaining, engine.duration)
	engine.display = model.FormatRemaining(remaining)
}

func (engine *Engine) resetDisplayLocked() {
	engine.remaining = 0
	engine.progress = 0
	engine.display = model.FormatRemaining(0)
}

func (engine *Engine) emitStateLocked(now time.Time) {
	engine.emitLocked(Event{
		Type:      EventStateChange,
		Kind:      engine.state.Kind(),
		Remaining: engine.remaining,
		Progress:  engine.progress,
		Display:   engine.display,
		At:        now,
	})
}

func (engine *Engine) emitProgressLocked(now time.Time) {
	engine.emitLocked(Event{
		Type:      EventProgress,
		Kind:      engine.state.Kind(),
		Remaining: engine.remaining,
		Progress:  engine.progress,
		Display:   engine.display,
		At:        now,
	})
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
