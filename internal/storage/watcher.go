package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"countdown/internal/ui/preferences"
	"github.com/fsnotify/fsnotify"
)

// SettingsWatcher reloads the settings file when it changes on disk.
type SettingsWatcher struct {
	path     string
	mu       sync.RWMutex
	settings preferences.Settings
	watcher  *fsnotify.Watcher
	onChange func(preferences.Settings)
	done     chan struct{}
	once     sync.Once
}

// NewSettingsWatcher loads the settings at path and watches its directory.
// onChange runs on the watcher goroutine after each successful reload.
func NewSettingsWatcher(path string, onChange func(preferences.Settings)) (*SettingsWatcher, error) {
	settings, err := LoadSettingsFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	w := &SettingsWatcher{
		path:     path,
		settings: settings,
		watcher:  fsWatcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Settings returns the most recently loaded settings.
func (w *SettingsWatcher) Settings() preferences.Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings
}

func (w *SettingsWatcher) watch() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *SettingsWatcher) reload() {
	settings, err := LoadSettingsFile(w.path)
	if err != nil {
		slog.Error("failed to reload settings",
			slog.String("path", w.path),
			slog.String("error", err.Error()),
		)
		return
	}

	w.mu.Lock()
	w.settings = settings
	w.mu.Unlock()

	slog.Info("settings reloaded", slog.String("path", w.path))
	if w.onChange != nil {
		w.onChange(settings)
	}
}

// Close stops watching.
func (w *SettingsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
