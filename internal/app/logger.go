package app

import (
	"fmt"
	"io"
	"log/slog"
)

// parseLevel maps a level name onto a slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", levelStr)
	}
}

// newLogger creates an isolated slog.Logger writing to logW. It never touches
// the global logger.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	level, err := parseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(logW, handlerOpts)
	}

	return slog.New(handler).With("component", "ciproject")
}
