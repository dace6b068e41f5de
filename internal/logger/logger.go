// Package logger builds the process-wide slog logger
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

// Setup initializes the default logger writing to stderr.
// level is one of debug, info, warn, error; format is text or json.
func Setup(level, format string) *slog.Logger {
	l := New(os.Stderr, level, format)
	defaultLogger.Store(l)
	return l
}

// New builds a logger on w without touching the default logger
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(h)
}

// L returns the default logger, falling back to one built from the
// environment. Safe for concurrent use; concurrent first calls agree on
// a single logger.
func L() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	return defaultLogger.Load()
}
