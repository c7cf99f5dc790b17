package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courierlab/dispatchsim/core/simerr"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "trace:\n  path: trace.jsonl\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bipartite", cfg.Simulation.Strategy)
	assert.Equal(t, "distance_to_pickup", cfg.Simulation.CostFunction)
	assert.Equal(t, int64(DefaultTaskDurationSeconds), cfg.Simulation.TaskDurationSeconds)
	require.NotNil(t, cfg.Simulation.RejectionProbability)
	assert.InDelta(t, DefaultRejectionProbability, *cfg.Simulation.RejectionProbability, 1e-12)
	assert.Equal(t, int64(DefaultRandomSeed), cfg.Simulation.RandomSeed)
	assert.Equal(t, "jsonl", cfg.Records.Backend)
	assert.Equal(t, "trace.jsonl", cfg.Trace.Path)
}

func TestLoad_ExplicitZeroRejection(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  rejection_probability: 0.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Simulation.RejectionProbability)
	assert.Zero(t, *cfg.Simulation.RejectionProbability)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"simulation":{"strategy":"greedy_online","random_seed":7}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "greedy_online", cfg.Simulation.Strategy)
	assert.Equal(t, int64(7), cfg.Simulation.RandomSeed)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidRejectionProbability(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  rejection_probability: 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, simerr.ErrConfiguration))
}

func TestLoad_UnknownRecordsBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
records:
  backend: parquet
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, simerr.ErrConfiguration))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DS_SIMULATION__STRATEGY", "cluster_bundle")
	path := writeConfig(t, "config.yaml", "trace:\n  path: t.jsonl\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cluster_bundle", cfg.Simulation.Strategy)
}
