package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the per-user configuration directory for app.
func ConfigDir(app string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, app), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", app), nil
}

// DataDir returns the per-user data directory for app, honouring XDG_DATA_HOME.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}
