package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"countdown/internal/core/countdown"
	"countdown/internal/logging"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

const appName = "countdown"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	backend := flag.String("backend", "", "storage backend override: yaml or sqlite")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, error")
	logFile := flag.String("log-file", "", "log file (default: data dir)")
	minutes := flag.Int("minutes", 0, "initial countdown length in minutes (default: from settings)")
	flag.Parse()

	dataDir := platform.DataDir(appName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	settingsPath := *configPath
	if settingsPath == "" {
		configDir, err := platform.ConfigDir(appName)
		if err != nil {
			return err
		}
		settingsPath = filepath.Join(configDir, storage.SettingsFileName)
	}
	settings, settingsErr := storage.LoadSettingsFile(settingsPath)
	if *backend != "" {
		settings.StorageBackend = *backend
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	if *minutes > 0 {
		settings.DefaultMinutes = *minutes
	}

	logPath := *logFile
	if logPath == "" {
		logPath = filepath.Join(dataDir, "countdown-tui.log")
	}
	_, logCloser, err := logging.SetupFile(settings.LogLevel, logging.FormatText, logPath)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	if settingsErr != nil {
		slog.Warn("load settings, using defaults", slog.String("error", settingsErr.Error()))
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return fmt.Errorf("another countdown is already running: %w", err)
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, storeCloser, err := storage.OpenStore(settings.StorageBackend, dataDir)
	if err != nil {
		return err
	}
	defer storeCloser.Close()

	bell := platform.SenderFunc(func(title, message string) error {
		slog.Info("countdown finished", slog.String("title", title), slog.String("message", message))
		_, err := fmt.Fprint(os.Stderr, "\a")
		return err
	})
	engine := countdown.New(settings.EngineConfig(), countdown.Dependencies{
		Notifier:   platform.NewDelayedNotifier(bell),
		Repository: storage.NewTimerRepository(store),
	})
	defer engine.Close()

	program := tea.NewProgram(tui.New(engine, engine.Subscribe(64), settings.DefaultMinutes), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
