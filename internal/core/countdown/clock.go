package countdown

import (
	"sync"
	"time"
)

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time. The monotonic reading is stripped:
// end instants must keep counting while the host is suspended.
func (SystemClock) Now() time.Time {
	return time.Now().Round(0)
}

// TickerScheduler runs each schedule on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

// Schedule starts calling callback every interval until the handle is stopped.
func (TickerScheduler) Schedule(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(interval, callback)
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) run(interval time.Duration, callback func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			select {
			case <-handle.stopCh:
				return
			default:
			}
			callback()
		}
	}
}

// Stop ends the schedule.
func (handle *tickerHandle) Stop() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}
