// Package config loads the process configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string `yaml:"log_level,omitempty"`

	// DefaultQuality applies when the request carries no q parameter.
	DefaultQuality int `yaml:"default_quality,omitempty"`

	// MaxSourceBytes caps the source read; zero disables the cap.
	MaxSourceBytes int64 `yaml:"max_source_bytes,omitempty"`

	// MaxPixels caps width*height of the decoded source.
	MaxPixels int `yaml:"max_pixels,omitempty"`
}

const (
	DefaultQuality        = 85
	DefaultMaxSourceBytes = 100 * 1024 * 1024
	DefaultMaxPixels      = 71000000 // covers 16k x 4k panoramas

	EnvLogLevel       = "PIXELMILL_LOG_LEVEL"
	EnvDefaultQuality = "PIXELMILL_QUALITY"
	EnvMaxSourceBytes = "PIXELMILL_MAX_SOURCE_BYTES"
	EnvMaxPixels      = "PIXELMILL_MAX_PIXELS"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		DefaultQuality: DefaultQuality,
		MaxSourceBytes: DefaultMaxSourceBytes,
		MaxPixels:      DefaultMaxPixels,
	}
}

// Load reads the YAML file at path when it exists, then applies
// environment overrides. An empty path loads defaults and environment
// only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvDefaultQuality); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 || q > 100 {
			return nil, fmt.Errorf("invalid %s: %q", EnvDefaultQuality, v)
		}
		cfg.DefaultQuality = q
	}
	if v := os.Getenv(EnvMaxSourceBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid %s: %q", EnvMaxSourceBytes, v)
		}
		cfg.MaxSourceBytes = n
	}
	if v := os.Getenv(EnvMaxPixels); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s: %q", EnvMaxPixels, v)
		}
		cfg.MaxPixels = n
	}

	return cfg, nil
}
