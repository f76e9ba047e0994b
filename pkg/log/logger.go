package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelInfo)
)

// SetupLogger installs a zerolog provider writing JSON records to stderr at
// the given level ("debug", "info", "warn" or "error") and routes library
// warnings into it.
func SetupLogger(loglevel string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}
	SetupLoggerWithWriter(os.Stderr, level)
	return nil
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(w io.Writer, level Level) {
	p := NewZerologProvider(w, level)
	SetProvider(p)

	warnLogger := p.base.With().Str(ComponentKey, "warnings").Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := warnLogger.Warn()
		var marshaler zerolog.LogObjectMarshaler
		if errors.As(warning, &marshaler) {
			event = event.Object("warning", marshaler)
		}
		event.Msg(warning.Error())
	})
}

// ParseLevel converts a level name into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValueError("log.ParseLevel", fmt.Sprintf("invalid log level: %s", level))
	}
}

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger of the global provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component logger of the global provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
