package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"panelfx/internal/grid"
)

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := Default()
	require.Equal(t, 60, cfg.Engine.TargetFPS)
	require.Equal(t, 2, cfg.Engine.Columns)
	require.Equal(t, 7, cfg.Engine.RowsPerColumn)
	require.Equal(t, grid.TopologyCircular, cfg.Engine.InitialTopology)
	require.True(t, cfg.ArtNet.Enabled)
	require.Equal(t, "255.255.255.255", cfg.ArtNet.Host)
}

func TestLoadOverlaysJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"engine": {"targetFPS": 30, "columns": 4, "rowsPerColumn": 3, "initialTopology": "linear"},
		"artnet": {"enabled": false, "host": "10.0.0.5", "universe": 2}
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Engine.TargetFPS)
	require.Equal(t, 4, cfg.Engine.Columns)
	require.Equal(t, 3, cfg.Engine.RowsPerColumn)
	require.Equal(t, grid.TopologyLinear, cfg.Engine.InitialTopology)
	require.False(t, cfg.ArtNet.Enabled)
	require.Equal(t, "10.0.0.5", cfg.ArtNet.Host)
	require.Equal(t, 2, cfg.ArtNet.Universe)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, Default().Engine, cfg.Engine)
}

func TestEnvOverridesWinOverDefaults(t *testing.T) {
	t.Setenv("ENGINE_TARGET_FPS", "120")
	t.Setenv("ARTNET_ENABLED", "false")
	t.Setenv("ARTNET_HOST", "192.168.1.255")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 120, cfg.Engine.TargetFPS)
	require.False(t, cfg.ArtNet.Enabled)
	require.Equal(t, "192.168.1.255", cfg.ArtNet.Host)
}

func TestIsDevelopment(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.IsDevelopment())
	cfg.Env = "production"
	require.False(t, cfg.IsDevelopment())
}
