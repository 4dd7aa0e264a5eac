package bootstrap

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/3issane/PFETRACKCODE212/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.AppConfig{Log: config.LogConfig{Level: "info", Format: "json"}})
	logger.Info("hello", "k", "v")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	dev := newLogger(&buf, &config.AppConfig{IsDev: true, Log: config.LogConfig{Level: "error", Format: "json"}})
	dev.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PFETRACK_STORE", "memory")
	t.Setenv("PFETRACK_API_BASE_URL", "http://backend.test/api/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "http://backend.test/api", cfg.API.BaseURL)
}
