// Package timerwindow is the desktop countdown window.
package timerwindow

import (
	"fmt"
	"image/color"

	"countdown/internal/core/countdown"
	"countdown/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// CompletionTitle is the in-app alert shown when a countdown ends.
const CompletionTitle = "Timer done!"

// Controller is the engine surface the window drives.
type Controller interface {
	Snapshot() countdown.View
	Toggle(minutes float64)
	Stop()
	AcknowledgeCompletion()
}

// Window manages the countdown UI.
type Window struct {
	window     fyne.Window
	controller Controller

	display      *canvas.Text
	minutesLabel *widget.Label
	slider       *widget.Slider
	progress     *widget.ProgressBar
	mainButton   *widget.Button
	stopButton   *widget.Button

	onCompletion func()
}

// New creates the countdown window with the slider set to defaultMinutes.
func New(app fyne.App, controller Controller, defaultMinutes int) *Window {
	window := app.NewWindow("Countdown")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	display := canvas.NewText("", color.NRGBA{R: 245, G: 158, B: 11, A: 255})
	display.Alignment = fyne.TextAlignCenter
	display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	display.TextSize = 48

	slider := widget.NewSlider(preferences.MinMinutes, preferences.MaxMinutes)
	slider.Step = 1
	slider.Value = float64(preferences.ClampMinutes(defaultMinutes))

	minutesLabel := widget.NewLabel("")
	minutesLabel.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	mainButton := widget.NewButton(countdown.ActionStart.Title(), nil)
	mainButton.Importance = widget.HighImportance
	stopButton := widget.NewButton("Stop", nil)

	buttons := container.NewHBox(layout.NewSpacer(), stopButton, mainButton, layout.NewSpacer())
	content := container.NewVBox(
		display,
		progress,
		minutesLabel,
		slider,
		buttons,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 260))

	timer := &Window{
		window:       window,
		controller:   controller,
		display:      display,
		minutesLabel: minutesLabel,
		slider:       slider,
		progress:     progress,
		mainButton:   mainButton,
		stopButton:   stopButton,
	}

	slider.OnChanged = func(float64) {
		timer.Render(controller.Snapshot())
	}
	mainButton.OnTapped = func() {
		controller.Toggle(timer.Minutes())
		timer.Render(controller.Snapshot())
	}
	stopButton.OnTapped = func() {
		controller.Stop()
		timer.Render(controller.Snapshot())
	}

	timer.Render(controller.Snapshot())
	return timer
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// Hide hides the window.
func (timer *Window) Hide() {
	timer.window.Hide()
}

// Window exposes the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// SetOnCompletion sets a hook run after the completion alert is raised.
func (timer *Window) SetOnCompletion(handler func()) {
	timer.onCompletion = handler
}

// Minutes returns the slider selection.
func (timer *Window) Minutes() float64 {
	return timer.slider.Value
}

// SetDefaultMinutes moves the slider while no countdown is running.
func (timer *Window) SetDefaultMinutes(minutes int) {
	view := timer.controller.Snapshot()
	if view.StopEnabled() {
		return
	}
	timer.slider.SetValue(float64(preferences.ClampMinutes(minutes)))
	timer.Render(view)
}

// Render applies an engine view. Call on the fyne goroutine.
func (timer *Window) Render(view countdown.View) {
	timer.display.Text = view.DisplayFor(timer.slider.Value)
	timer.display.Refresh()
	timer.progress.SetValue(view.Progress)
	timer.minutesLabel.SetText(minutesCaption(timer.slider.Value))
	timer.mainButton.SetText(view.PrimaryAction().Title())

	if view.StopEnabled() {
		timer.stopButton.Enable()
		timer.slider.Disable()
	} else {
		timer.stopButton.Disable()
		timer.slider.Enable()
	}

	if view.CompletionPending {
		timer.controller.AcknowledgeCompletion()
		timer.Show()
		dialog.ShowInformation(CompletionTitle, "", timer.window)
		if timer.onCompletion != nil {
			timer.onCompletion()
		}
	}
}

func minutesCaption(minutes float64) string {
	if int(minutes) == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", int(minutes))
}
