package logging_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
)

func TestNewLogger_Defaults(t *testing.T) {
	t.Parallel()
	logger, err := logging.NewLogger(logging.LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("startup", logging.String("component", "test"))
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	t.Parallel()
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  "debug",
		Format: "console",
	})
	require.NoError(t, err)
	logger.Debug("visible at debug level")
}

func TestZapLogger_EmitsTypedFields(t *testing.T) {
	t.Parallel()
	core, observed := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerFromCore(core)

	logger.Info("cycle complete",
		logging.String("timeframe", "short_term"),
		logging.Int("forecasts", 3),
		logging.Int64("elapsed_ms", 42),
		logging.Float64("mean_score", 0.62),
		logging.Bool("persisted", true),
		logging.Duration("window", 7*24*time.Hour),
		logging.Err(stderrors.New("partial read")),
	)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cycle complete", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "short_term", ctx["timeframe"])
	assert.Equal(t, int64(3), ctx["forecasts"])
	assert.Equal(t, 0.62, ctx["mean_score"])
	assert.Equal(t, true, ctx["persisted"])
	assert.Equal(t, "partial read", ctx["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	t.Parallel()
	core, observed := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerFromCore(core)

	child := logger.Named("watchlist").With(logging.String("list", "dangerous_organizations"))
	child.Warn("entry stale")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "watchlist", entries[0].LoggerName)
	assert.Equal(t, "dangerous_organizations", entries[0].ContextMap()["list"])
}

func TestErr_NilError(t *testing.T) {
	t.Parallel()
	f := logging.Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestDefault_SetAndGet(t *testing.T) {
	nop := logging.NewNopLogger()
	logging.SetDefault(nop)
	assert.Equal(t, nop, logging.Default())

	// nil is ignored, the previous default survives.
	logging.SetDefault(nil)
	assert.Equal(t, nop, logging.Default())
}

func TestNopLogger_IsInert(t *testing.T) {
	t.Parallel()
	nop := logging.NewNopLogger()
	nop.Debug("d")
	nop.Info("i")
	nop.Warn("w")
	nop.Error("e")
	assert.Equal(t, nop, nop.With(logging.String("k", "v")))
	assert.Equal(t, nop, nop.Named("child"))
}
