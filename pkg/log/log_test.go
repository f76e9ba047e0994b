package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelInfo)
	logger := p.GetLoggerWithName("linear").With(ModelNameKey, "LinearRegression")

	logger.Debug("hidden")
	logger.Info("Training started", SamplesKey, 10, FeaturesKey, 2)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Training started", entry["message"])
	assert.Equal(t, "linear", entry["logger"])
	assert.Equal(t, "LinearRegression", entry[ModelNameKey])
	assert.Equal(t, float64(10), entry[SamplesKey])
	assert.Equal(t, float64(2), entry[FeaturesKey])
	assert.Contains(t, entry, "time")
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologProvider(&buf, LevelDebug).GetLogger()

	err := errors.NewNotFittedError("LinearRegression", "Predict")
	logger.Error("Prediction failed", err, OperationKey, OperationPredict)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Contains(t, entries[0]["error"], "not fitted")
	assert.Equal(t, OperationPredict, entries[0][OperationKey])
}

func TestZerologLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelWarn)
	logger := p.GetLogger()

	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, LevelInfo))
	assert.True(t, logger.Enabled(ctx, LevelWarn))
	assert.True(t, logger.Enabled(ctx, LevelError))

	p.SetLevel(LevelDebug)
	assert.True(t, p.GetLogger().Enabled(ctx, LevelDebug))
}

func TestSetupLoggerWithWriterRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, LevelInfo)
	t.Cleanup(func() {
		errors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo))
	})

	errors.Warn(errors.NewUndefinedMetricWarning("R2", "constant y_true", 0))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "warnings", entries[0][ComponentKey])

	warning, ok := entries[0]["warning"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "R2", warning["metric"])
	assert.Equal(t, "UndefinedMetricWarning", warning["type"])

	GetLoggerWithName("cmd").Info("after setup")
	assert.Contains(t, buf.String(), "after setup")
}

func TestSetupLoggerInvalidLevel(t *testing.T) {
	err := SetupLogger("loud")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestTestLogger(t *testing.T) {
	logger, buf := NewTestLogger(LevelInfo)
	child := logger.With(EstimatorIDKey, "abc")

	child.Debug("skipped")
	child.Info("Training completed", IterationsKey, 1000)
	child.Error("failed", errors.New("boom"))

	assert.True(t, logger.ContainsMessage("Training completed"))
	assert.False(t, logger.ContainsMessage("skipped"))
	assert.True(t, logger.ContainsField(EstimatorIDKey, "abc"))
	assert.True(t, logger.ContainsField(IterationsKey, float64(1000)))
	assert.True(t, logger.ContainsField("error", "boom"))

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.NotZero(t, buf.Len())

	logger.Clear()
	assert.Zero(t, buf.Len())
}

func TestTestLoggerProvider(t *testing.T) {
	p, logger := NewTestLoggerProvider(LevelDebug)
	SetProvider(p)
	t.Cleanup(func() { SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelInfo)) })

	GetLoggerWithName("metrics").Debug("evaluated")
	assert.True(t, logger.ContainsField("logger", "metrics"))
}
