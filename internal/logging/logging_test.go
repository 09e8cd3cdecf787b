package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventcost.log")
	l, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	l.Debug("estimate", Amount("monthly_cost", decimal.RequireFromString("12525.09")), zap.String("tier", "A"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"monthly_cost":"12525.09"`)
	assert.Contains(t, string(data), `"tier":"A"`)
}

func TestNewFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventcost.log")
	l, err := New(Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestOr(t *testing.T) {
	nop := zap.NewNop()
	assert.Same(t, nop, Or(nop))
	assert.Same(t, Logger, Or(nil))
}

func TestPackageHelpersUseGlobalLogger(t *testing.T) {
	prevLogger, prevSugar := Logger, Sugar
	t.Cleanup(func() { Logger, Sugar = prevLogger, prevSugar })

	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core)
	Sugar = Logger.Sugar()

	Debug("schedule selected", zap.String("source", "built-in"))
	Info("listening", zap.String("addr", ":8080"))
	Warn("shutdown timeout is zero")
	Error("server stopped")
	Sugar.Infof("shut down %s", ":8080")

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "built-in", entries[0].ContextMap()["source"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "shut down :8080", entries[4].Message)
}
