// Package config loads the YAML configuration shared by the command line tools.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/3nids/CadInput/internal/logging"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable overriding the config file path
const EnvPath = "CADINPUT_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath is set
const DefaultPath = "cadinput.yaml"

// Config holds all settings of the digitizing tools.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Snapping SnappingConfig `yaml:"snapping"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Layers   LayersConfig   `yaml:"layers"`
	Watch    WatchConfig    `yaml:"watch"`
}

// SnappingConfig controls the snapping index.
type SnappingConfig struct {
	TolerancePx float64 `yaml:"tolerance_px"`
	Vertex      bool    `yaml:"vertex"`
	Segment     bool    `yaml:"segment"`
}

// CanvasConfig holds the initial map view.
type CanvasConfig struct {
	UnitsPerPixel float64 `yaml:"units_per_pixel"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
}

// LayersConfig points at the feature store.
type LayersConfig struct {
	Database string `yaml:"database"` // sqlite path, empty for in-memory
	Current  string `yaml:"current"`
}

// WatchConfig tunes file watching.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
		Snapping: SnappingConfig{
			TolerancePx: 10,
			Vertex:      true,
			Segment:     true,
		},
		Canvas: CanvasConfig{
			UnitsPerPixel: 0.1,
			Width:         1024,
			Height:        768,
		},
		Layers: LayersConfig{
			Current: "sketch",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Path resolves the config file path: explicit flag, then EnvPath, then DefaultPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env
	}
	return DefaultPath
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	if c.Snapping.TolerancePx < 0 {
		return fmt.Errorf("snapping.tolerance_px must not be negative, got %v", c.Snapping.TolerancePx)
	}
	if c.Canvas.UnitsPerPixel <= 0 {
		return fmt.Errorf("canvas.units_per_pixel must be positive, got %v", c.Canvas.UnitsPerPixel)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Layers.Current == "" {
		return fmt.Errorf("layers.current must be set")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return nil
}
