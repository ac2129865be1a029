package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
http:
  addr: ":9001"
  api_token: "secret"
logging:
  level: "debug"
planstore:
  cache_size: 64
  sqlite_path: "/tmp/plans.db"
montecarlo:
  workers: 4
  seed: 42
metrics:
  prometheus_enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.HTTP.Addr)
	assert.Equal(t, "secret", cfg.HTTP.APIToken)
	assert.Equal(t, 5, cfg.HTTP.ShutdownTimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.PlanStore.CacheSize)
	assert.Equal(t, "/tmp/plans.db", cfg.PlanStore.SQLitePath)
	assert.Equal(t, 4, cfg.MonteCarlo.Workers)
	assert.Equal(t, int64(42), cfg.MonteCarlo.Seed)
	assert.Equal(t, 30, cfg.MonteCarlo.TimeoutSeconds)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"http": {"addr": ":7777"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTP.Addr)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `addr = ":9001"`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TAKT_HTTP__ADDR", ":6006")
	path := writeConfig(t, "config.yaml", `
http:
  addr: ":9001"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6006", cfg.HTTP.Addr)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8001", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.APIToken)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 256, cfg.PlanStore.CacheSize)
	assert.Zero(t, cfg.PlanStore.CacheTTLMinutes)
	assert.Positive(t, cfg.MonteCarlo.Workers)
	assert.Equal(t, 30, cfg.MonteCarlo.TimeoutSeconds)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
}
