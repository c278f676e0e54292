package tilebiten

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the window and loop settings for a Game.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	FPS        int    `yaml:"fps"`
	Fullscreen bool   `yaml:"fullscreen"`

	// CameraSmoothing is the camera's per-update smoothing fraction.
	CameraSmoothing float64 `yaml:"camera_smoothing"`
}

// DefaultConfig returns the default game settings.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		Title:           "Tile-based Game",
		FPS:             60,
		CameraSmoothing: 0.1,
	}
}

// LoadConfig reads a YAML settings file over the defaults, so a file only
// needs to name the settings it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("tilebiten: load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("tilebiten: parse config %s: %w", path, err)
	}
	return cfg, nil
}
