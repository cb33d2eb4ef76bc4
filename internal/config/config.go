// Package config provides configuration loading and management for eafcheck.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output format names accepted by Config.Format.
const (
	FormatPlain = "plain"
	FormatRich  = "rich"
	FormatJSON  = "json"
)

// Config represents the complete eafcheck configuration.
type Config struct {
	// Schema is a path to an external XSD overriding the embedded ORTOFON
	// schema (empty = use the embedded one).
	Schema string `yaml:"schema"`
	// Jobs is the number of documents validated concurrently.
	Jobs int `yaml:"jobs"`
	// Format selects the output renderer: plain, rich or json.
	Format string    `yaml:"format"`
	Log    LogConfig `yaml:"log"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Jobs:   1,
		Format: FormatPlain,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile reads a config file. Missing files surface as os.IsNotExist
// errors so callers can treat them as "layer absent".
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &config, nil
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Schema != "" {
		c.Schema = other.Schema
	}
	if other.Jobs != 0 {
		c.Jobs = other.Jobs
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Format {
	case FormatPlain, FormatRich, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
