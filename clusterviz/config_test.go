package clusterviz

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.DefaultDimension)
	assert.Equal(t, 640, cfg.PlotWidth)
	assert.Equal(t, 480, cfg.PlotHeight)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Config{
		DefaultAlgorithm: "DBSCAN",
		DefaultDimension: 3,
		LastDirectory:    "/data",
		PlotWidth:        800,
		PlotHeight:       600,
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApplyDefaultsRejectsBadDimension(t *testing.T) {
	cfg := Config{DefaultDimension: 5}
	cfg.ApplyDefaults()
	assert.Equal(t, 2, cfg.DefaultDimension)
}
