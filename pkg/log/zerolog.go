package log

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of a zerolog.Logger.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog logger.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if stacktrace := extractStacktrace(err); stacktrace != "" {
				event = event.Str(StacktraceKey, stacktrace)
			}
			fields = fields[1:]
		}
	}
	emit(event, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

// emit tolerates the nil event zerolog returns for disabled levels.
func emit(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// extractStacktrace returns the first safe detail cockroachdb/errors stores
// for a stack-carrying error.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// ZerologProvider implements LoggerProvider with JSON output to a writer.
type ZerologProvider struct {
	mu   sync.RWMutex
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing to w at the given level.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	base := zerolog.New(w).
		Level(toZerologLevel(level)).
		With().
		Timestamp().
		Logger()
	return &ZerologProvider{base: base}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.base)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return NewZerologLogger(p.base.With().Str("logger", name).Logger())
}

// SetLevel implements LoggerProvider.SetLevel. Loggers handed out earlier
// keep their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(toZerologLevel(level))
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
}
