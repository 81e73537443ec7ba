package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("BROKERDESK_API_URL", "https://crm.example.com/api")
	t.Setenv("BROKERDESK_API_TIMEOUT_MS", "5000")
	t.Setenv("BROKERDESK_DB", "/tmp/bd.db")
	t.Setenv("BROKERDESK_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "https://crm.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5000, cfg.APITimeoutMs)
	assert.Equal(t, "/tmp/bd.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_IgnoresMalformedTimeout(t *testing.T) {
	t.Setenv("BROKERDESK_API_TIMEOUT_MS", "soon")
	cfg := Load()
	assert.Equal(t, Default().APITimeoutMs, cfg.APITimeoutMs)
}

func TestNewLogger_NonTerminalUsesTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")

	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")

	logger.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
	assert.Equal(t, slog.LevelWarn, parseLevel("bogus"))
}
