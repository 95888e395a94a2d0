// Package tui is the terminal front end for the countdown engine.
package tui

import (
	"strings"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/ui/preferences"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxProgressWidth = 60
	doneBanner       = "Timer done!"
)

// Engine is the countdown surface the terminal model drives.
type Engine interface {
	Snapshot() countdown.View
	Toggle(minutes float64)
	Stop()
	AcknowledgeCompletion()
}

// EventMsg carries an engine event into the update loop.
type EventMsg countdown.Event

type eventsClosedMsg struct{}

func waitForEvent(events <-chan countdown.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg(event)
	}
}

// Model is the bubbletea model.
type Model struct {
	engine   Engine
	events   <-chan countdown.Event
	theme    Theme
	progress progress.Model

	minutes int
	view    countdown.View
	done    bool
}

// New returns a model over engine. events is usually engine.Subscribe.
func New(engine Engine, events <-chan countdown.Event, defaultMinutes int) Model {
	m := Model{
		engine:   engine,
		events:   events,
		theme:    DefaultTheme,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		minutes:  preferences.ClampMinutes(defaultMinutes),
	}
	m.progress.Width = 40
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > maxProgressWidth {
			width = maxProgressWidth
		}
		if width > 0 {
			m.progress.Width = width
		}
		return m, nil
	case EventMsg:
		m.refresh()
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s", " ", "enter":
		m.done = false
		m.engine.Toggle(float64(m.minutes))
	case "x":
		m.done = false
		m.engine.Stop()
	case "+", "=", "up", "right":
		if !m.view.StopEnabled() {
			m.minutes = preferences.ClampMinutes(m.minutes + 1)
		}
	case "-", "down", "left":
		if !m.view.StopEnabled() {
			m.minutes = preferences.ClampMinutes(m.minutes - 1)
		}
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	m.view = m.engine.Snapshot()
	if m.view.CompletionPending {
		m.engine.AcknowledgeCompletion()
		m.view.CompletionPending = false
		m.done = true
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Countdown"))
	b.WriteString("  ")
	b.WriteString(m.stateLabel())
	b.WriteString("\n")
	b.WriteString(m.theme.Display.Render(m.view.DisplayFor(float64(m.minutes))))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.view.Progress))
	b.WriteString("\n\n")
	if m.done {
		b.WriteString(m.theme.Done.Render(doneBanner))
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Dim.Render(m.helpLine()))
	return m.theme.Base.Render(b.String())
}

func (m Model) stateLabel() string {
	switch m.view.Kind {
	case model.KindActive:
		return m.theme.Active.Render("running")
	case model.KindPaused:
		return m.theme.Paused.Render("paused")
	default:
		return m.theme.Stopped.Render("stopped")
	}
}

func (m Model) helpLine() string {
	parts := []string{"s " + strings.ToLower(m.view.PrimaryAction().Title())}
	if m.view.StopEnabled() {
		parts = append(parts, "x stop")
	} else {
		parts = append(parts, "+/- minutes")
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " • ")
}
