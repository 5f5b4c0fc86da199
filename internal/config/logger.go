package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger builds a logger from level and format names. Unknown levels
// log at info; any format but "json" is text.
func NewLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// OpenLog opens the configured log file for appending and returns a logger
// writing to it. The terminal belongs to the UI, so nothing is logged there.
func (m *Manager) OpenLog() (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(m.config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogger(m.config.LogLevel, m.config.LogFormat, f), f, nil
}
