package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "astar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.Size)
	assert.Equal(t, 0.25, cfg.ObstructionProbability)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
size: 32
obstruction_probability: 0.4
seed: 1234
searches: 10
workers: 2
validate_endpoints: true
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Size:                   32,
		ObstructionProbability: 0.4,
		Seed:                   1234,
		Searches:               10,
		Workers:                2,
		ValidateEndpoints:      true,
		LogLevel:               "debug",
	}, cfg)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "size: 32\nseed: 5\n")
	t.Setenv("ASTAR_SIZE", "8")
	t.Setenv("ASTAR_OBSTRUCTION", "0.1")
	t.Setenv("ASTAR_SEED", "99")
	t.Setenv("ASTAR_WORKERS", "3")
	t.Setenv("ASTAR_LOG_LEVEL", "warn")
	t.Setenv("ASTAR_VALIDATE_ENDPOINTS", "true")
	t.Setenv("ASTAR_SEARCHES", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Size)
	assert.Equal(t, 0.1, cfg.ObstructionProbability)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.ValidateEndpoints)
	assert.Equal(t, 100, cfg.Searches)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "size: [1, 2\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	t.Setenv("ASTAR_SIZE", "0")
	t.Setenv("ASTAR_LOG_LEVEL", "chatty")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Size)
	assert.Error(t, cfg.Validate())

	cfg.Size = 5
	cfg.LogLevel = "error"
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"obstruction of one", "obstruction_probability: 1\n"},
		{"negative obstruction", "obstruction_probability: -0.5\n"},
		{"empty grid", "size: 0\n"},
		{"no workers", "workers: 0\n"},
		{"unknown log level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.contents))
			require.NoError(t, err)
			assert.ErrorContains(t, cfg.Validate(), "invalid configuration")
		})
	}

	t.Run("defaults", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})
}

func TestValidateFields(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0

	assert.NoError(t, cfg.ValidateFields("LogLevel", "Size"))
	assert.ErrorContains(t, cfg.ValidateFields("Workers"), "Workers")
	assert.Error(t, cfg.ValidateFields())
}
