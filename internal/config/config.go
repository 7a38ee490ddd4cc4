// Package config loads the server configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the serve and mcp commands.
type Config struct {
	// Port is the HTTP API port for serve mode.
	Port int `yaml:"port" json:"port"`
	// MetricsPort serves Prometheus metrics; 0 disables them.
	MetricsPort int `yaml:"metricsPort" json:"metricsPort"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// HoldingGap is the distance in beats between the end of the
	// arrangement and the staging area for truncated clips.
	HoldingGap float64 `yaml:"holdingGap" json:"holdingGap"`
	// ControlDeviceName is the display name of this layer's hosting
	// device, stripped from duplicated tracks.
	ControlDeviceName string `yaml:"controlDeviceName" json:"controlDeviceName"`

	// Fixture points at a YAML set description served by the in-memory
	// host. Empty means an empty set.
	Fixture string `yaml:"fixture" json:"fixture"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:        8080,
		MetricsPort: 2112,
		LogLevel:    "info",
	}
}

// Load reads a configuration file (YAML or JSON). A missing file at the
// default path is not an error; explicit paths must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.Port <= 0 {
		return cfg, fmt.Errorf("port must be positive, got %d", cfg.Port)
	}
	return cfg, nil
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
