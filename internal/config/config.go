// Package config provides configuration loading for unideck.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when the config file and environment leave a
// field unset.
const (
	DefaultBaseURL   = "https://dummyjson.com"
	DefaultTimeout   = 10 * time.Second
	DefaultLogLevel  = "info"
	DefaultPageLimit = 100
)

// Config is the full unideck configuration.
type Config struct {
	API      APIConfig     `mapstructure:"api"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
	DataDir  string        `mapstructure:"data_dir" validate:"required"`
	LogLevel string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// APIConfig configures the remote catalog API client.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,http_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig tunes catalog fetching.
type CatalogConfig struct {
	PageLimit int `mapstructure:"page_limit" validate:"min=1,max=500"`
}

// SetDefaults fills in default values for unset optional fields.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Catalog.PageLimit == 0 {
		c.Catalog.PageLimit = DefaultPageLimit
	}
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unideck"
	}
	return filepath.Join(home, ".unideck")
}

// SlogLevel maps the configured log level onto slog's scale.
// Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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

// WriteDefault writes a starter config file to path.
// Fails if the file already exists.
func WriteDefault(path string) error {
	var cfg Config
	cfg.SetDefaults()

	doc := map[string]any{
		"api": map[string]any{
			"base_url": cfg.API.BaseURL,
			"timeout":  cfg.API.Timeout.String(),
		},
		"catalog": map[string]any{
			"page_limit": cfg.Catalog.PageLimit,
		},
		"data_dir":  cfg.DataDir,
		"log_level": cfg.LogLevel,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
