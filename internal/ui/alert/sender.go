// Package alert delivers desktop notifications through fyne.
package alert

import (
	"errors"

	"fyne.io/fyne/v2"
)

// FyneSender posts notifications through the fyne app.
type FyneSender struct {
	app fyne.App
}

// NewFyneSender returns a sender bound to app.
func NewFyneSender(app fyne.App) *FyneSender {
	return &FyneSender{app: app}
}

// Send posts the notification on the fyne goroutine.
func (sender *FyneSender) Send(title, message string) error {
	if sender == nil || sender.app == nil {
		return errors.New("send notification: no fyne app")
	}
	notification := fyne.NewNotification(title, message)
	fyne.Do(func() {
		sender.app.SendNotification(notification)
	})
	return nil
}
