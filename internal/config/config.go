// Package config manages the optional git-wippy user configuration.
// Settings live in a TOML file under the user config directory; a missing
// file simply yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	configDir  = "git-wippy"
	configFile = "config.toml"
)

// Config holds the user-level settings.
type Config struct {
	// Remote is the remote used for publishing and deleting WIP
	// branches.
	Remote string `toml:"remote"`
	// LocalOnly skips remote operations by default, as if --local were
	// always passed.
	LocalOnly bool `toml:"local_only"`
	// Username overrides the owner derived from git user.name.
	Username string `toml:"username"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Remote: "origin"}
}

// Path returns the location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDir, configFile), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return cfg, nil
}

// Save writes the configuration to disk, creating the directory if
// needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
