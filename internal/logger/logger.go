package logger

import (
	"log/slog"
	"os"
)

// New creates the storefront's JSON logger. LOG_LEVEL (debug, info, warn,
// error) overrides the default info level; unknown values fall back to info.
func New() *slog.Logger {
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(raw)); err == nil {
			level = parsed
		}
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
