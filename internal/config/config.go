// Package config handles configuration loading and validation for the
// binding: where the native engine library lives, which layout profile
// to apply, and how to log.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nullstyle/git2/internal/logging"
)

// Version is the current configuration schema version.
const Version = 1

// Environment variables honored as overrides.
const (
	// EnvLibraryPath overrides Library.Path.
	EnvLibraryPath = "GIT2_LIBRARY_PATH"
	// EnvLogLevel overrides Logging.Level.
	EnvLogLevel = "GIT2_LOG_LEVEL"
)

// Config holds the complete binding configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version"`

	// Library configures native library location.
	Library LibraryConfig `toml:"library"`

	// Logging configures the structured logger.
	Logging logging.Config `toml:"logging"`
}

// LibraryConfig locates the native engine and its layout profile.
type LibraryConfig struct {
	// Path is an explicit library path; when set, search paths are
	// ignored.
	Path string `toml:"path"`

	// SearchPaths are extra directories probed before the platform
	// defaults.
	SearchPaths []string `toml:"search_paths"`

	// LayoutProfile is an optional JSON layout-profile path for engine
	// versions whose struct layouts differ from the built-ins.
	LayoutProfile string `toml:"layout_profile"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a TOML configuration file and applies environment
// overrides. A missing file yields the defaults, still with overrides
// applied, so a bare environment variable is enough to point the
// binding at a library.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLibraryPath); v != "" {
		c.Library.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Version != Version {
		return fmt.Errorf("config: unsupported version %d (want %d)", c.Version, Version)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return err
	}
	for _, dir := range c.Library.SearchPaths {
		if dir == "" {
			return errors.New("config: empty library search path")
		}
	}
	if p := c.Library.LayoutProfile; p != "" && filepath.Ext(p) != ".json" {
		return fmt.Errorf("config: layout profile %s is not a .json file", p)
	}
	return nil
}

// DefaultPath returns the conventional config file location,
// ~/.git2/config.toml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".git2", "config.toml")
}
