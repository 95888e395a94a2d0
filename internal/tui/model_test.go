package tui

import (
	"strings"
	"testing"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/storage"
	"countdown/internal/testing/fakes/fakeclock"
	"countdown/internal/testing/fakes/fakescheduler"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	engine    *countdown.Engine
	clock     *fakeclock.Clock
	scheduler *fakescheduler.Scheduler
	events    <-chan countdown.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := fakeclock.New(epoch)
	scheduler := fakescheduler.New()
	engine := countdown.New(model.DefaultEngineConfig(), countdown.Dependencies{
		Clock:      clock,
		Scheduler:  scheduler,
		Repository: storage.NewTimerRepository(storage.NewMemoryStore()),
	})
	t.Cleanup(engine.Close)
	return &fixture{engine: engine, clock: clock, scheduler: scheduler, events: engine.Subscribe(64)}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(key))
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestMinutesAdjustOnlyWhileStopped(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 5)

	m, _ = press(t, m, "+")
	m, _ = press(t, m, "+")
	assert.Equal(t, 7, m.minutes)
	assert.Contains(t, m.View(), "7:00")

	m, _ = press(t, m, "s")
	assert.Equal(t, model.KindActive, m.view.Kind)
	m, _ = press(t, m, "-")
	assert.Equal(t, 7, m.minutes)
}

func TestMinutesClampToSliderRange(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 20)

	m, _ = press(t, m, "+")
	assert.Equal(t, 20, m.minutes)

	m = New(f.engine, f.events, 1)
	m, _ = press(t, m, "-")
	assert.Equal(t, 1, m.minutes)
}

func TestStartPauseResumeStop(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 3)

	m, _ = press(t, m, "s")
	assert.Equal(t, model.KindActive, m.view.Kind)
	assert.Contains(t, m.View(), "s pause")
	assert.Contains(t, m.View(), "3:0.000")

	f.clock.Advance(30 * time.Second)
	m, _ = press(t, m, "s")
	assert.Equal(t, model.KindPaused, m.view.Kind)
	assert.Contains(t, m.View(), "2:30.000")
	assert.Contains(t, m.View(), "s resume")

	m, _ = press(t, m, "s")
	assert.Equal(t, model.KindActive, m.view.Kind)

	m, _ = press(t, m, "x")
	assert.Equal(t, model.KindStopped, m.view.Kind)
	assert.Contains(t, m.View(), "3:00")
}

func TestEventRefreshesAndShowsCompletionOnce(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 1)
	m, _ = press(t, m, "s")

	f.clock.Advance(time.Minute)
	f.scheduler.Flush()

	next, cmd := m.Update(EventMsg{Type: countdown.EventCompleted})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), doneBanner)
	assert.False(t, f.engine.Snapshot().CompletionPending)

	m, _ = press(t, m, "s")
	assert.False(t, m.done)
	assert.Equal(t, model.KindActive, m.view.Kind)
}

func TestWaitForEventDeliversEngineEvents(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 2)

	cmd := m.Init()
	require.NotNil(t, cmd)
	f.engine.Start(2)

	msg := cmd()
	event, ok := msg.(EventMsg)
	require.True(t, ok)
	assert.Equal(t, countdown.EventStateChange, event.Type)
	assert.Equal(t, model.KindActive, event.Kind)
}

func TestClosedEventsQuit(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 2)
	cmd := m.Init()

	f.engine.Close()
	msg := cmd()
	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t)
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := press(t, New(f.engine, f.events, 2), key)
		require.NotNil(t, cmd, key)
		assert.IsType(t, tea.QuitMsg{}, cmd(), key)
	}
}

func TestWindowSizeCapsProgressWidth(t *testing.T) {
	f := newFixture(t)
	m := New(f.engine, f.events, 2)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, maxProgressWidth, next.(Model).progress.Width)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	assert.Equal(t, 22, next.(Model).progress.Width)
	assert.False(t, strings.Contains(next.(Model).View(), doneBanner))
}
