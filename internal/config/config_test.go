package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadinput.yaml")
	data := `
log_level: debug
snapping:
  tolerance_px: 4
  segment: false
canvas:
  units_per_pixel: 0.5
layers:
  database: layers.db
  current: parcels
watch:
  debounce: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 4.0, cfg.Snapping.TolerancePx)
	assert.True(t, cfg.Snapping.Vertex)
	assert.False(t, cfg.Snapping.Segment)
	assert.Equal(t, 0.5, cfg.Canvas.UnitsPerPixel)
	assert.Equal(t, 1024, cfg.Canvas.Width)
	assert.Equal(t, "layers.db", cfg.Layers.Database)
	assert.Equal(t, "parcels", cfg.Layers.Current)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "log_level: [",
		"bad level":    "log_level: chatty",
		"bad format":   "log_format: xml",
		"negative tol": "snapping:\n  tolerance_px: -1",
		"zero scale":   "canvas:\n  units_per_pixel: 0",
		"no layer":     "layers:\n  current: \"\"",
		"zero width":   "canvas:\n  width: 0",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cadinput.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path(""))

	t.Setenv(EnvPath, "/etc/cadinput.yaml")
	assert.Equal(t, "/etc/cadinput.yaml", Path(""))
	assert.Equal(t, "local.yaml", Path("local.yaml"))
}
