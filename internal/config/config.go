// Package config provides unified configuration for Tessera index tooling.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the index core and its tooling.
type Config struct {
	// CatalogPath is the path to the system catalog database (system.db)
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// UseNewTokenComputation selects the corrected token-column computation
	// for newly created index views. Keep false only while a rolling upgrade
	// still has nodes that understand only the legacy encoding.
	UseNewTokenComputation bool `json:"use_new_token_computation" yaml:"use_new_token_computation"`

	// Log configuration
	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `json:"level" yaml:"level"`

	// Pretty enables human-readable console output for development
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:            "system.db",
		UseNewTokenComputation: true,
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file, applied on top
// of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv applies environment variable overrides to the configuration.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("TESSERA_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("TESSERA_USE_NEW_TOKEN_COMPUTATION"); v != "" {
		cfg.UseNewTokenComputation = v == "true" || v == "1"
	}
	if v := os.Getenv("TESSERA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TESSERA_LOG_PRETTY"); v != "" {
		cfg.Log.Pretty = v == "true" || v == "1"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
