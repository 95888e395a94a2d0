package tray

import (
	"fmt"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
)

const menuTitle = "Countdown"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// App is the tray surface of a fyne desktop app; desktop.App satisfies it.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Manager mirrors the engine state in the system tray.
type Manager struct {
	app        App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	stopItem   *fyne.MenuItem
	callbacks  Callbacks
	kind       model.StateKind
	status     string
	iconFor    func(model.StateKind) fyne.Resource
}

// New creates a tray manager with the provided callbacks. iconFor supplies
// the tray icon per state and may be nil.
func New(app App, callbacks Callbacks, iconFor func(model.StateKind) fyne.Resource) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		iconFor:   iconFor,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem(countdown.ActionStart.Title(), func() {
		invoke(manager.callbacks.OnToggle)
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		invoke(manager.callbacks.OnStop)
	})

	manager.SetView(countdown.View{Kind: model.KindStopped})
	return manager
}

// SetView updates the menu from an engine view. The menu is only rebuilt
// when the visible text or state changes.
func (manager *Manager) SetView(view countdown.View) {
	status := StatusLabel(view)
	if view.Kind == manager.kind && status == manager.status {
		return
	}
	kindChanged := view.Kind != manager.kind
	manager.kind = view.Kind
	manager.status = status

	manager.statusItem.Label = status
	manager.toggleItem.Label = view.PrimaryAction().Title()
	manager.stopItem.Disabled = !view.StopEnabled()
	manager.refreshMenu()

	if kindChanged && manager.app != nil && manager.iconFor != nil {
		manager.app.SetSystemTrayIcon(manager.iconFor(view.Kind))
	}
}

// StatusLabel renders the tray status line with whole-second resolution.
func StatusLabel(view countdown.View) string {
	switch view.Kind {
	case model.KindActive:
		return fmt.Sprintf("Running: %s left", wholeSeconds(view.Remaining))
	case model.KindPaused:
		return fmt.Sprintf("Paused: %s left", wholeSeconds(view.Remaining))
	default:
		return "Stopped"
	}
}

func wholeSeconds(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	))
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
