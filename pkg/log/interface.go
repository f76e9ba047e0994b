// Package log provides the structured logging interface used across linreg.
//
// The interface is slog-shaped (key/value pairs after the message) so that
// implementations can be swapped without touching call sites. The default
// implementation is backed by zerolog; tests use TestLogger.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("linear").With(
//	    log.ModelNameKey, "LinearRegression",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
type Logger interface {
	// Debug logs a debug-level message with optional key/value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key/value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key/value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. If the first field is an error it is
	// attached as the error attribute together with its stack trace.
	//
	// Example:
	//   logger.Error("Model training failed",
	//       err,
	//       log.OperationKey, log.OperationFit,
	//   )
	Error(msg string, fields ...any)

	// With returns a Logger that adds the given fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Use it to
	// skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
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

// LoggerProvider creates component loggers. The package keeps one global
// provider; tests swap it with SetProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
