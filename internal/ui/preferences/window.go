package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	onCancel func()

	minutes      *widget.Slider
	minutesLabel *widget.Label
	tickInterval *widget.Entry
	title        *widget.Entry
	message      *widget.Entry
	backend      *widget.Select
	logLevel     *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Countdown Settings")

	minutes := widget.NewSlider(MinMinutes, MaxMinutes)
	minutes.Step = 1
	minutesLabel := widget.NewLabel("")

	tickInterval := widget.NewEntry()
	title := widget.NewEntry()
	message := widget.NewMultiLineEntry()
	message.Wrapping = fyne.TextWrapWord
	backend := widget.NewSelect([]string{BackendYAML, BackendSQLite}, nil)
	logLevel := widget.NewSelect(logLevels, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Default length"), minutesLabel, minutes),
		container.NewHBox(widget.NewLabel("Refresh every"), tickInterval, widget.NewLabel("ms")),
		widget.NewLabelWithStyle("Notification", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Title"),
		title,
		widget.NewLabel("Message"),
		message,
		widget.NewLabelWithStyle("Advanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Storage (applies on restart)"), backend),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 480))

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		minutes:      minutes,
		minutesLabel: minutesLabel,
		tickInterval: tickInterval,
		title:        title,
		message:      message,
		backend:      backend,
		logLevel:     logLevel,
	}

	minutes.OnChanged = func(value float64) {
		minutesLabel.SetText(fmt.Sprintf("%d min", int(value)))
	}
	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the cancel handler.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.minutes.SetValue(float64(ClampMinutes(settings.DefaultMinutes)))
	prefs.minutesLabel.SetText(fmt.Sprintf("%d min", ClampMinutes(settings.DefaultMinutes)))
	prefs.tickInterval.SetText(strconv.Itoa(int(settings.TickInterval / time.Millisecond)))
	prefs.title.SetText(settings.NotificationTitle)
	prefs.message.SetText(settings.NotificationMessage)
	prefs.backend.SetSelected(settings.StorageBackend)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings

	settings.DefaultMinutes = ClampMinutes(int(prefs.minutes.Value))
	if millis, ok := parsePositiveInt(prefs.tickInterval.Text); ok {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	if title := strings.TrimSpace(prefs.title.Text); title != "" {
		settings.NotificationTitle = title
	}
	if message := strings.TrimSpace(prefs.message.Text); message != "" {
		settings.NotificationMessage = message
	}
	if prefs.backend.Selected != "" {
		settings.StorageBackend = prefs.backend.Selected
	}
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
