package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"astar", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := runApp(t, "--seed", "7", "--size", "12", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "The map (. is a passable square, # is an impassable square):")
	if !strings.Contains(out, "No path exists") {
		assert.Contains(t, out, "'x' marks the path")
	}
}

func TestDemoCommand_EmptyMap(t *testing.T) {
	out, err := runApp(t, "--seed", "1", "--size", "6", "--obstruction", "0", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "The path from")
}

func TestBenchCommand(t *testing.T) {
	out, err := runApp(t, "--seed", "3", "--size", "15", "bench", "--searches", "25", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "astar_searches_total")
	assert.Contains(t, out, "astar_search_duration_seconds_count 25")
}

func TestBenchCommand_RejectsZeroWorkers(t *testing.T) {
	_, err := runApp(t, "bench", "--workers", "0")
	assert.Error(t, err)
}

func TestTraceCommand(t *testing.T) {
	out, err := runApp(t, "--seed", "5", "--size", "8", "--obstruction", "0", "trace")
	require.NoError(t, err)
	assert.Contains(t, out, "Found a path of cost")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 5\nobstruction_probability: 0\nseed: 2\n"), 0o600))

	out, err := runApp(t, "--config", path, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, ". . . . . \n")
}

func TestFlagsOverrideInvalidEnvironment(t *testing.T) {
	t.Setenv("ASTAR_SIZE", "0")
	t.Setenv("ASTAR_LOG_LEVEL", "chatty")

	out, err := runApp(t, "--size", "5", "--obstruction", "0", "--seed", "1", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, ". . . . . \n")
}

func TestFlagsOverrideInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 0\nobstruction_probability: 1.5\n"), 0o600))

	_, err := runApp(t, "--config", path, "demo")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runApp(t, "--config", path, "--size", "4", "--obstruction", "0", "--seed", "1", "demo")
	assert.NoError(t, err)
}

func TestInvalidEnvironmentWithoutOverride(t *testing.T) {
	t.Setenv("ASTAR_WORKERS", "0")

	_, err := runApp(t, "--seed", "1", "demo")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = runApp(t, "--seed", "1", "--size", "6", "bench", "--searches", "2", "--workers", "2")
	assert.NoError(t, err)
}

func TestInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"--log-level", "chatty", "demo"}},
		{"obstruction", []string{"--obstruction", "2", "demo"}},
		{"size", []string{"--size", "0", "demo"}},
		{"missing config", []string{"--config", "/does/not/exist.yaml", "demo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
