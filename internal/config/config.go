package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DefaultVersion = 1

	// DefaultDebounce is how long the worksheet watcher waits for writes
	// to settle before re-evaluating.
	DefaultDebounce = 100 * time.Millisecond
)

// Config defines project configuration stored in .mx/config.json.
type Config struct {
	Version  int    `json:"version"`
	Debounce string `json:"debounce,omitempty"`
	BoardURL string `json:"board_url,omitempty"`
}

// GetDebounce returns the configured debounce interval (default 100ms).
func (c Config) GetDebounce() time.Duration {
	if c.Debounce == "" {
		return DefaultDebounce
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

// Validate ensures config values are within supported ranges.
func (c Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Debounce != "" {
		d, err := time.ParseDuration(c.Debounce)
		if err != nil {
			return fmt.Errorf("invalid debounce: %w", err)
		}
		if d < 10*time.Millisecond {
			return fmt.Errorf("debounce must be at least 10ms, got %v", d)
		}
		if d > 10*time.Second {
			return fmt.Errorf("debounce must be at most 10s, got %v", d)
		}
	}
	return nil
}

// Default returns the default config.
func Default() Config {
	return Config{
		Version: DefaultVersion,
	}
}

// Load reads config from disk and applies defaults for zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config not found: %w", err)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes a config to disk.
func Save(path string, cfg Config) error {
	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// LoadOrDefault reads config from disk, returning defaults if file doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}
