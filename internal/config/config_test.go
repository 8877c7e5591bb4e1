package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ATS_API_BASE_URL", "http://ats.local")
	t.Setenv("ATS_CACHE_TTL", "45s")
	t.Setenv("HISTORY_SESSION_LIMIT", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "http://ats.local", cfg.ATS.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.ATS.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.ATS.Timeout)
	assert.Equal(t, 50, cfg.History.SessionLimit)
	assert.Equal(t, 20, cfg.History.SearchLimit)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, "ats", cfg.Ai.ChatBackend)
}
