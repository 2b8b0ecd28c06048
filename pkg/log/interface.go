// Package log provides the structured logging interface used across bfte.
//
// The Logger interface is slog-compatible (alternating key/value fields) and
// is backed by zerolog in production. Attribute keys live in attributes.go so
// training, feature extraction and inference log the same field names.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("linear").With(
//	    log.ModelNameKey, "LinearRegression",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 1,
//	)
package log

import (
	"context"
)

// Logger is a structured logger with slog-style key/value fields.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...any)

	// Info logs an info-level message.
	Info(msg string, fields ...any)

	// Warn logs a warning.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. An error value passed as a field is
	// rendered with its message and, when available, its stack trace.
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every subsequent entry.
	With(fields ...any) Logger

	// Enabled reports whether entries at level would be written.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level. Values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers. It lets tests substitute a capturing
// implementation.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level.
	SetLevel(level Level)
}
