package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("Dispatcher", "Answered", map[string]interface{}{"rule": "greeting"})
	log.Warn("Hub", "Dropped", nil)
	log.Error("Service", "Failed", map[string]interface{}{"error": "boom"})

	entries := logs.All()
	require.Len(t, entries, 3)

	info := entries[0].ContextMap()
	assert.Equal(t, "Dispatcher", info["module"])
	assert.Equal(t, map[string]interface{}{"rule": "greeting"}, info["details"])

	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])

	errFields := entries[2].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", errFields["error_ref"])
}

func TestZapExposesBase(t *testing.T) {
	base := zap.NewNop()
	assert.Same(t, base, FromZap(base).Zap())
}
