package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
llm:
  base_url: https://api.example.com/v1
  api_key: test-key
  model: test-model
limits:
  qps: 2
  rpm: 45
baseline:
  cache_dir: /tmp/wb
  ttl_hours: 12
  timeout_seconds: 3
  workers: 4
  offline: true
log:
  level: debug
  file: /tmp/test.log
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.Limits.QPS)
	assert.Equal(t, 45, cfg.Limits.RPM)
	assert.Equal(t, "/tmp/wb", cfg.Baseline.CacheDir)
	assert.Equal(t, 12, cfg.Baseline.TTLHours)
	assert.True(t, cfg.Baseline.Offline)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
