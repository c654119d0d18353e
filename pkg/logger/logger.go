package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"finderid-api/internal/domain"
)

// AppLogger implements the domain.Logger interface on top of slog
type AppLogger struct {
	logger *slog.Logger
}

// NewLogger creates a logger writing to stdout
func NewLogger(levelStr string, format string) *AppLogger {
	return NewLoggerWithWriter(os.Stdout, levelStr, format)
}

// NewLoggerWithWriter creates a logger writing to w. format is "json" or "text".
func NewLoggerWithWriter(w io.Writer, levelStr string, format string) *AppLogger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(levelStr),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &AppLogger{logger: slog.New(handler)}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err}, fields...)
	l.logger.Error(msg, allFields...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, fields...)
}

// Enabled reports whether messages at level would be written
func (l *AppLogger) Enabled(level slog.Level) bool {
	return l.logger.Enabled(context.Background(), level)
}

// Slog exposes the underlying logger for libraries that take one
func (l *AppLogger) Slog() *slog.Logger {
	return l.logger
}

var _ domain.Logger = (*AppLogger)(nil)

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
