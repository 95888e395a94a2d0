package preferences

import (
	"time"

	"countdown/internal/core/model"
)

// Slider bounds for the countdown length, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 20
)

// Storage backend names.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Settings defines editable user preferences.
type Settings struct {
	DefaultMinutes int
	TickInterval   time.Duration

	NotificationTitle   string
	NotificationMessage string

	StorageBackend string
	LogLevel       string
}

// DefaultSettings returns default settings for the countdown app.
func DefaultSettings() Settings {
	return Settings{
		DefaultMinutes:      5,
		TickInterval:        model.DefaultTickInterval,
		NotificationTitle:   model.DefaultNotificationTitle,
		NotificationMessage: model.DefaultNotificationMessage,
		StorageBackend:      BackendYAML,
		LogLevel:            "info",
	}
}

// ClampMinutes limits minutes to the slider range.
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// EngineConfig converts settings to the engine's runtime config.
func (settings Settings) EngineConfig() model.EngineConfig {
	return model.EngineConfig{
		TickInterval: settings.TickInterval,
		Notification: model.NotificationConfig{
			Title:   settings.NotificationTitle,
			Message: settings.NotificationMessage,
		},
	}.Normalized()
}
