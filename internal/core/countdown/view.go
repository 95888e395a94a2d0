package countdown

import "countdown/internal/core/model"

// Action is the command behind the primary button.
type Action int

const (
	ActionStart Action = iota
	ActionPause
	ActionResume
)

// Title returns the button caption for the action.
func (action Action) Title() string {
	switch action {
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	default:
		return "Start"
	}
}

// PrimaryAction returns what the primary button does in this view.
func (view View) PrimaryAction() Action {
	switch view.Kind {
	case model.KindActive:
		return ActionPause
	case model.KindPaused:
		return ActionResume
	default:
		return ActionStart
	}
}

// StopEnabled reports whether Stop has anything to stop.
func (view View) StopEnabled() bool {
	return view.Kind != model.KindStopped && view.Kind != ""
}

// DisplayFor returns the countdown text, previewing the selected length
// while stopped.
func (view View) DisplayFor(selectedMinutes float64) string {
	if view.Kind == model.KindStopped || view.Kind == "" {
		return model.FormatWholeMinutes(selectedMinutes)
	}
	return view.Display
}

// Toggle runs the primary action for the current state: start a countdown of
// minutes when stopped, pause when active, resume when paused.
func (engine *Engine) Toggle(minutes float64) {
	switch engine.Snapshot().PrimaryAction() {
	case ActionStart:
		engine.Start(minutes)
	case ActionPause:
		engine.Pause()
	case ActionResume:
		engine.Resume()
	}
}
