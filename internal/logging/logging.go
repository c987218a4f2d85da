// Package logging configures the structured logger shared by the commands.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup builds a JSON logger at the requested level, sets it as the process
// default, and returns it. An unknown level falls back to info rather than
// failing startup.
func Setup(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info", "":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	return logger
}
