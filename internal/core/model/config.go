package model

import "time"

// Engine defaults.
const (
	DefaultTickInterval        = 10 * time.Millisecond
	DefaultNotificationTitle   = "Timer Done"
	DefaultNotificationMessage = "Your countdown has finished."
)

// NotificationConfig describes the alert delivered when a countdown ends.
type NotificationConfig struct {
	Title   string
	Message string
}

// EngineConfig contains runtime settings for the countdown engine.
type EngineConfig struct {
	TickInterval time.Duration
	Notification NotificationConfig
}

// DefaultEngineConfig returns the configuration used when none is supplied.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickInterval: DefaultTickInterval,
		Notification: NotificationConfig{
			Title:   DefaultNotificationTitle,
			Message: DefaultNotificationMessage,
		},
	}
}

// Normalized fills zero fields with defaults.
func (config EngineConfig) Normalized() EngineConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.Notification.Title == "" {
		config.Notification.Title = DefaultNotificationTitle
	}
	if config.Notification.Message == "" {
		config.Notification.Message = DefaultNotificationMessage
	}
	return config
}
