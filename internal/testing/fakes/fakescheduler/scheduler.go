// Package fakescheduler provides a periodic scheduler whose ticks are fired by the test.
package fakescheduler

import (
	"sync"
	"time"

	"countdown/internal/core/countdown"
)

// Scheduler records schedules and runs their callbacks only on Flush.
type Scheduler struct {
	mu        sync.Mutex
	handles   []*Handle
	scheduled int
}

// Handle is a single recorded schedule.
type Handle struct {
	mu       sync.Mutex
	interval time.Duration
	callback func()
	stopped  bool
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule records the callback without running it.
func (s *Scheduler) Schedule(interval time.Duration, callback func()) countdown.Handle {
	handle := &Handle{interval: interval, callback: callback}
	s.mu.Lock()
	s.handles = append(s.handles, handle)
	s.scheduled++
	s.mu.Unlock()
	return handle
}

// Flush fires one tick on every schedule that has not been stopped.
func (s *Scheduler) Flush() {
	for _, handle := range s.snapshot() {
		if handle.Stopped() {
			continue
		}
		handle.callback()
	}
}

// FlushAll fires every schedule ever recorded, stopped or not. It stands in
// for a tick that was already in flight when its schedule was cancelled.
func (s *Scheduler) FlushAll() {
	for _, handle := range s.snapshot() {
		handle.callback()
	}
}

// Active returns the number of schedules that have not been stopped.
func (s *Scheduler) Active() int {
	count := 0
	for _, handle := range s.snapshot() {
		if !handle.Stopped() {
			count++
		}
	}
	return count
}

// Scheduled returns how many schedules were ever created.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// LastInterval returns the interval of the most recent schedule.
func (s *Scheduler) LastInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handles) == 0 {
		return 0
	}
	return s.handles[len(s.handles)-1].interval
}

func (s *Scheduler) snapshot() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Handle(nil), s.handles...)
}

// Stop marks the schedule as cancelled.
func (h *Handle) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

var _ countdown.Scheduler = (*Scheduler)(nil)
