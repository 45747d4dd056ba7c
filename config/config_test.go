package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvOverrides neutraliza las variables que Load lee del entorno;
// el valor vacío se ignora en applyEnvOverrides.
func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL", "PORT", "CACHE_TTL_SECONDS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3600, cfg.Arena.IntervalSeconds)
	assert.Equal(t, 1500, cfg.Arena.CacheTTLSeconds)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "botarena.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)

	require.Len(t, cfg.Agents, 6)
	assert.Equal(t, "tiago", cfg.Agents[0].ID)
	assert.Equal(t, "ming", cfg.Agents[5].ID)
}

func TestLoad_YAMLOverridesRosterAndCadence(t *testing.T) {
	clearEnvOverrides(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
arena:
  interval_seconds: 60
  cache_ttl_seconds: 30
storage:
  dsn: "redis://localhost:6379/0"
agents:
  - id: solo
    name: Solo
    strategy: contrarian_value
    params:
      min_edge: 5
      kelly_fraction: 0.5
      max_positions: 2
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Arena.IntervalSeconds)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.DSN)
	require.Len(t, cfg.Agents, 1)
	assert.Equal(t, "solo", cfg.Agents[0].ID)
	assert.Equal(t, 5.0, cfg.Agents[0].Params.MinEdge)
	assert.Equal(t, 2, cfg.Agents[0].Params.MaxPositions)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultAgents_DistinctStrategies(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range DefaultAgents() {
		assert.False(t, seen[p.Strategy], "estrategia repetida: %s", p.Strategy)
		seen[p.Strategy] = true
		assert.Greater(t, p.Params.MaxPositions, 0, p.ID)
		assert.Greater(t, p.Params.KellyFraction, 0.0, p.ID)
	}
}
