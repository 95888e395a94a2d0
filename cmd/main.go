package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"countdown/internal/core/countdown"
	"countdown/internal/logging"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/ui/alert"
	"countdown/internal/ui/preferences"
	"countdown/internal/ui/timerwindow"
	"countdown/internal/ui/tray"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "countdown"
	appID   = "com.countdown.app"
)

func main() {
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	backend := flag.String("backend", "", "storage backend override: yaml or sqlite")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, error")
	logFormat := flag.String("log-format", logging.FormatText, "log format: text or json")
	flag.Parse()

	logging.Setup(preferences.DefaultSettings().LogLevel, *logFormat, os.Stderr)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunningInstance(appName); activateErr != nil {
				slog.Warn("activate running instance", slog.String("error", activateErr.Error()))
			}
		}
		slog.Info("single instance", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath, err := resolveSettingsPath(*configPath)
	if err != nil {
		slog.Error("resolve settings path", slog.String("error", err.Error()))
		os.Exit(1)
	}
	overrides := func(settings preferences.Settings) preferences.Settings {
		if *backend != "" {
			settings.StorageBackend = *backend
		}
		if *logLevel != "" {
			settings.LogLevel = *logLevel
		}
		return settings
	}

	settings, err := storage.LoadSettingsFile(settingsPath)
	if err != nil {
		slog.Warn("load settings, using defaults", slog.String("error", err.Error()))
	}
	settings = overrides(settings)
	logging.SetLevel(settings.LogLevel)

	store, closer, err := storage.OpenStore(settings.StorageBackend, platform.DataDir(appName))
	if err != nil {
		slog.Error("open timer store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		_ = closer.Close()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())

	engine := countdown.New(settings.EngineConfig(), countdown.Dependencies{
		Notifier:   platform.NewDelayedNotifier(alert.NewFyneSender(fyneApp)),
		Repository: storage.NewTimerRepository(store),
	})
	defer engine.Close()

	timer := timerwindow.New(fyneApp, engine, settings.DefaultMinutes)

	applySettings := func(updated preferences.Settings) {
		engine.UpdateConfig(updated.EngineConfig())
		logging.SetLevel(updated.LogLevel)
		timer.SetDefaultMinutes(updated.DefaultMinutes)
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettingsFile(settingsPath, updated); err != nil {
			slog.Error("save settings", slog.String("error", err.Error()))
		}
		applySettings(overrides(updated))
	})

	watcher, err := storage.NewSettingsWatcher(settingsPath, func(updated preferences.Settings) {
		updated = overrides(updated)
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	})
	if err != nil {
		slog.Warn("watch settings", slog.String("error", err.Error()))
	} else {
		defer func() {
			_ = watcher.Close()
		}()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: timer.Show,
			OnToggle: func() {
				engine.Toggle(timer.Minutes())
			},
			OnStop:        engine.Stop,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		}, resources.StateIcon)
		timer.Window().SetCloseIntercept(timer.Hide)
	} else {
		slog.Info("system tray unsupported on this platform")
		timer.Window().SetMaster()
	}

	guard.OnActivate(func() {
		fyne.Do(timer.Show)
	})

	lifecycle := fyneApp.Lifecycle()
	lifecycle.SetOnEnteredForeground(engine.ResumeTickUpdates)
	if fyne.CurrentDevice().IsMobile() {
		lifecycle.SetOnExitedForeground(engine.PauseTickUpdates)
	}

	render := func() {
		view := engine.Snapshot()
		timer.Render(view)
		if trayManager != nil {
			trayManager.SetView(view)
		}
	}

	events := engine.Subscribe(16)
	go func() {
		for range events {
			fyne.Do(render)
		}
	}()

	render()
	timer.Show()
	fyneApp.Run()
}

func resolveSettingsPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, storage.SettingsFileName), nil
}
