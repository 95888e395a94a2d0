package countdown_test

import (
	"testing"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestViewPresentation(t *testing.T) {
	cases := []struct {
		kind        model.StateKind
		action      countdown.Action
		title       string
		stopEnabled bool
		display     string
	}{
		{model.KindStopped, countdown.ActionStart, "Start", false, "7:00"},
		{model.KindActive, countdown.ActionPause, "Pause", true, "6:59.500"},
		{model.KindPaused, countdown.ActionResume, "Resume", true, "6:59.500"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			view := countdown.View{Kind: tc.kind, Display: "6:59.500"}
			assert.Equal(t, tc.action, view.PrimaryAction())
			assert.Equal(t, tc.title, view.PrimaryAction().Title())
			assert.Equal(t, tc.stopEnabled, view.StopEnabled())
			assert.Equal(t, tc.display, view.DisplayFor(7))
		})
	}
}

func TestToggleCyclesStartPauseResume(t *testing.T) {
	h := newHarness(t, nil, nil)

	h.engine.Toggle(2)
	assert.Equal(t, model.KindActive, h.engine.Snapshot().Kind)

	h.engine.Toggle(2)
	assert.Equal(t, model.KindPaused, h.engine.Snapshot().Kind)

	h.engine.Toggle(2)
	assert.Equal(t, model.KindActive, h.engine.Snapshot().Kind)

	h.engine.Stop()
	h.engine.Toggle(0)
	assert.Equal(t, model.KindStopped, h.engine.Snapshot().Kind)
}
