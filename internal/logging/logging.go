// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var level = new(slog.LevelVar)

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a default logger writing to w (stderr when nil) in the
// given format and returns it.
func Setup(levelName, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level.Set(ParseLevel(levelName))

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of the logger installed by Setup.
func SetLevel(levelName string) {
	level.Set(ParseLevel(levelName))
}

// SetupFile is Setup writing to the file at path, appending to existing
// content. The caller closes the returned file.
func SetupFile(levelName, format, path string) (*slog.Logger, io.Closer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return Setup(levelName, format, file), file, nil
}
