package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigParsesDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: "9090"
outbox:
  mode: worker
  fallback_interval: 45s
  poll_interval: 2m
  batch_size: 25
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("PORT", "")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "worker", cfg.Outbox.Mode)
	assert.Equal(t, 45*time.Second, time.Duration(cfg.Outbox.FallbackInterval))
	assert.Equal(t, 2*time.Minute, time.Duration(cfg.Outbox.PollInterval))
	assert.Equal(t, int32(25), cfg.Outbox.BatchSize)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("outbox:\n  poll_interval: soon\n"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Outbox.FallbackInterval))
	assert.Equal(t, "listener", cfg.Outbox.Mode)
}
