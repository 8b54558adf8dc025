// Package config loads pomotrack's settings from the environment and an
// optional YAML preset file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. POMOTRACK_LOG_LEVEL.
const Prefix = "POMOTRACK"

// Config holds the process-level settings. Timer durations live in the
// database; PresetFile only seeds them on first run.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Empty paths resolve under the user config directory.
	DBPath     string `envconfig:"DB_PATH"`
	LogPath    string `envconfig:"LOG_PATH"`
	PresetFile string `envconfig:"PRESET_FILE"`
	ExportDir  string `envconfig:"EXPORT_DIR"`

	CoverLimitMB float64 `envconfig:"COVER_LIMIT_MB" default:"2"`

	// Headless runs the timer without the TUI, logging phase changes.
	Headless bool `envconfig:"HEADLESS" default:"false"`
}

// Load reads POMOTRACK_* variables and fills path defaults.
func Load() (*Config, error) {
	return LoadWithPrefix(Prefix)
}

// LoadWithPrefix reads configuration with a prefix.
func LoadWithPrefix(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config with prefix %s: %w", prefix, err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Development reports whether human-readable console logging is wanted.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

func (c *Config) resolvePaths() error {
	if c.DBPath != "" && c.LogPath != "" && c.ExportDir != "" {
		return nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "pomotrack")
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "pomotrack.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "pomotrack.log")
	}
	if c.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.ExportDir = home
		} else {
			c.ExportDir = dir
		}
	}
	return nil
}
