// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Tiliavir/contractor-time-tracker/internal/config"
)

// ParseLevel maps a config level name to a slog.Level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// New returns a logger writing to w in the configured format. Output stays
// off stdout so command output can be piped.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", "ctt")
}

// Component tags logger output with the subsystem that produced it.
func Component(l *slog.Logger, name string) *slog.Logger {
	return l.With("component", name)
}
