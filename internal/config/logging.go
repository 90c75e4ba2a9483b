package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", s)
	}
}

// NewLogger returns a text logger on w. A nil writer yields a logger that
// discards everything.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LoggerFromEnv builds the process logger from GANTT_LOG_LEVEL and
// GANTT_LOG_FILE. Without a log file, output goes to fallback, which may be
// nil when the terminal is owned by the TUI. The returned func closes the
// log file.
func LoggerFromEnv(fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(os.Getenv("GANTT_LOG_LEVEL"))
	if err != nil {
		return nil, nil, err
	}
	path := os.Getenv("GANTT_LOG_FILE")
	if path == "" {
		return NewLogger(fallback, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return NewLogger(f, level), f.Close, nil
}
