package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"countdown/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

// SettingsFileName is the settings file inside the app config directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	DefaultMinutes      int    `yaml:"default_minutes"`
	TickIntervalMillis  int    `yaml:"tick_interval_ms"`
	NotificationTitle   string `yaml:"notification_title"`
	NotificationMessage string `yaml:"notification_message"`
	StorageBackend      string `yaml:"storage_backend"`
	LogLevel            string `yaml:"log_level"`
}

// LoadSettings reads user preferences from the app's config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to the app's config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		DefaultMinutes:      settings.DefaultMinutes,
		TickIntervalMillis:  int(settings.TickInterval / time.Millisecond),
		NotificationTitle:   settings.NotificationTitle,
		NotificationMessage: settings.NotificationMessage,
		StorageBackend:      settings.StorageBackend,
		LogLevel:            settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file path for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, SettingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.DefaultMinutes >= preferences.MinMinutes && fileData.DefaultMinutes <= preferences.MaxMinutes {
		settings.DefaultMinutes = fileData.DefaultMinutes
	}
	if fileData.TickIntervalMillis > 0 && fileData.TickIntervalMillis <= 1000 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}
	if title := strings.TrimSpace(fileData.NotificationTitle); title != "" {
		settings.NotificationTitle = title
	}
	if message := strings.TrimSpace(fileData.NotificationMessage); message != "" {
		settings.NotificationMessage = message
	}

	switch backend := strings.ToLower(strings.TrimSpace(fileData.StorageBackend)); backend {
	case preferences.BackendYAML, preferences.BackendSQLite:
		settings.StorageBackend = backend
	}
	if level := strings.TrimSpace(fileData.LogLevel); level != "" {
		settings.LogLevel = strings.ToLower(level)
	}
}
