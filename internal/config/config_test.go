package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelgame/internal/config"
)

func TestLoadFromMissingFileWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	reloaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded, "a written default file must round-trip unchanged")
}

func TestLoadFromBackfillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	// Simulates a file written by an older version missing a key
	// entirely — the "performance" section did not exist yet.
	require.NoError(t, os.WriteFile(path, []byte(`{"world":{"seed":99}}`), 0644))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.EqualValues(t, 99, cfg.World.Seed)
	assert.Equal(t, config.Default().Performance, cfg.Performance, "a key entirely absent from the file must backfill from defaults")
}

func TestViewRadiusScalesByChunkSize(t *testing.T) {
	cfg := config.Default()
	cfg.World.LoadRadius = 4
	assert.EqualValues(t, 128, cfg.ViewRadius(32))
}
