package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender delivers a notification to the user immediately.
type Sender interface {
	Send(title, message string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(title, message string) error

// Send calls fn.
func (fn SenderFunc) Send(title, message string) error { return fn(title, message) }

// DelayedNotifier schedules one-shot notifications on in-process timers.
// Pending requests do not survive process exit.
type DelayedNotifier struct {
	sender Sender

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewDelayedNotifier returns a notifier that hands due requests to sender.
func NewDelayedNotifier(sender Sender) *DelayedNotifier {
	return &DelayedNotifier{
		sender:  sender,
		pending: make(map[string]*time.Timer),
	}
}

// ScheduleOneShot registers a request firing once after delay and returns its id.
func (notifier *DelayedNotifier) ScheduleOneShot(delay time.Duration, title, message string) (string, error) {
	if notifier.sender == nil {
		return "", errors.New("schedule notification: no sender configured")
	}
	if delay < 0 {
		return "", fmt.Errorf("schedule notification: negative delay %s", delay)
	}

	id := uuid.NewString()
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.pending[id] = time.AfterFunc(delay, func() {
		notifier.fire(id, title, message)
	})
	return id, nil
}

// CancelAll drops every pending request.
func (notifier *DelayedNotifier) CancelAll() {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	for id, timer := range notifier.pending {
		timer.Stop()
		delete(notifier.pending, id)
	}
}

// Pending returns the number of requests not yet delivered.
func (notifier *DelayedNotifier) Pending() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.pending)
}

func (notifier *DelayedNotifier) fire(id, title, message string) {
	notifier.mu.Lock()
	_, ok := notifier.pending[id]
	delete(notifier.pending, id)
	notifier.mu.Unlock()
	if !ok {
		return
	}

	if err := notifier.sender.Send(title, message); err != nil {
		slog.Warn("deliver notification",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}
