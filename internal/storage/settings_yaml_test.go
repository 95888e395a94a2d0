package storage

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"countdown/internal/ui/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), SettingsFileName))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", SettingsFileName)
	want := preferences.Settings{
		DefaultMinutes:      12,
		TickInterval:        50 * time.Millisecond,
		NotificationTitle:   "Tea",
		NotificationMessage: "Steeped.",
		StorageBackend:      preferences.BackendSQLite,
		LogLevel:            "debug",
	}

	require.NoError(t, SaveSettingsFile(path, want))
	got, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsFileIgnoresOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	raw := "default_minutes: 45\ntick_interval_ms: -3\nnotification_title: '  '\nstorage_backend: redis\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("default_minutes: [\n"), 0o644))

	settings, err := LoadSettingsFile(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, SaveSettingsFile(path, preferences.DefaultSettings()))

	var lastMinutes atomic.Int64
	watcher, err := NewSettingsWatcher(path, func(settings preferences.Settings) {
		lastMinutes.Store(int64(settings.DefaultMinutes))
	})
	require.NoError(t, err)
	defer watcher.Close()
	assert.Equal(t, 5, watcher.Settings().DefaultMinutes)

	updated := preferences.DefaultSettings()
	updated.DefaultMinutes = 9
	require.NoError(t, SaveSettingsFile(path, updated))

	require.Eventually(t, func() bool { return lastMinutes.Load() == 9 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 9, watcher.Settings().DefaultMinutes)
	assert.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Close())
}
