// Package logging provides structured logging configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Setup configures the default slog logger on stderr.
// level: debug, info, warn, error (default: info)
// format: auto, text, json (default: auto)
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format, term.IsTerminal(int(os.Stderr.Fd()))))
}

// New builds a logger writing to w. With format "auto", text is used when
// w is a terminal and JSON otherwise.
func New(w io.Writer, level, format string, terminal bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	format = strings.ToLower(format)
	if format == "auto" || format == "" {
		format = "json"
		if terminal {
			format = "text"
		}
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level (default: info).
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
