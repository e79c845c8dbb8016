// Package config handles viewer configuration loading.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all viewer settings.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Model       ModelConfig       `toml:"model"`
	Assets      AssetsConfig      `toml:"assets"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ApplicationConfig holds window settings.
type ApplicationConfig struct {
	Name   string `toml:"name"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// ModelConfig holds the scene to load and how to scale it.
type ModelConfig struct {
	Path        string  `toml:"path"`
	GlobalScale float32 `toml:"global_scale"`
}

// AssetsConfig holds the asset directory watched for reloads.
type AssetsConfig struct {
	Directory string `toml:"directory"`
	Watch     bool   `toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:   "morphvk",
			Width:  1280,
			Height: 720,
		},
		Model: ModelConfig{
			Path:        "assets/models/model.gltf",
			GlobalScale: 1.0,
		},
		Assets: AssetsConfig{
			Directory: "assets",
			Watch:     false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file and merges it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
