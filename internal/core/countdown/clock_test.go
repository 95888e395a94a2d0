package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemClockHasNoMonotonicReading(t *testing.T) {
	now := SystemClock{}.Now()
	assert.Equal(t, now, now.Round(0))
}

func TestTickerSchedulerFiresUntilStopped(t *testing.T) {
	var calls atomic.Int32
	handle := TickerScheduler{}.Schedule(time.Millisecond, func() {
		calls.Add(1)
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	handle.Stop()
	handle.Stop()
	time.Sleep(5 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}
