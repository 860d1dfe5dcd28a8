// Package logger wraps slog with the text format used by the server and
// the CLI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a slog.Logger with a Fatal helper.
type Logger struct {
	*slog.Logger
}

// New logs to stdout at level (slog numbering: -4 debug, 0 info, 4 warn, 8 error).
func New(level int) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter logs text records at level or above to w.
func NewWithWriter(level int, w io.Writer) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})
	return &Logger{Logger: slog.New(h)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Fatal logs msg at error level and exits with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
