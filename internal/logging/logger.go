package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is a leveled logger shared by the fetcher, controller and commands.
// It is safe for concurrent use.
type Logger struct {
	l     *slog.Logger
	close func() error
}

// New creates a logger writing text records to w at the given level.
func New(w io.Writer, level string) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{l: slog.New(h), close: func() error { return nil }}
}

// NewFile creates a logger appending to path, creating parent directories.
// The TUI owns the terminal, so interactive sessions log here.
func NewFile(path, level string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	lg := New(f, level)
	lg.close = f.Close
	return lg, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return New(io.Discard, "error")
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// With returns a child logger that adds the key/value pairs to every record.
func (lg *Logger) With(args ...any) *Logger {
	return &Logger{l: lg.l.With(args...), close: lg.close}
}

// Debugf writes a debug message.
func (lg *Logger) Debugf(format string, args ...any) {
	lg.l.Debug(fmt.Sprintf(format, args...))
}

// Infof writes an informational message.
func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Info(fmt.Sprintf(format, args...))
}

// Warnf writes a warning message.
func (lg *Logger) Warnf(format string, args ...any) {
	lg.l.Warn(fmt.Sprintf(format, args...))
}

// Errorf writes an error message.
func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Error(fmt.Sprintf(format, args...))
}

// Close releases the underlying log file, if any.
func (lg *Logger) Close() error {
	return lg.close()
}
