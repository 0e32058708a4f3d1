// Package config holds speakerup's YAML configuration with environment
// overrides. A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all speakerup configuration.
type Config struct {
	// Backend overrides platform selection: powershell, osascript,
	// pactl. Empty means pick by GOOS (native backend preferred on
	// Windows).
	Backend string `yaml:"backend"`

	// Timeout bounds each scripting call, as a duration string.
	Timeout string `yaml:"timeout"`

	// DarkMode forces the dark color theme in the interactive menu.
	DarkMode bool `yaml:"dark_mode"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Timeout: "30s",
	}
}

// DefaultPath is the conventional config location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "speakerup", "config.yaml"), nil
}

// Load reads the config at path, falling back to defaults when the
// file does not exist. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ShellTimeout parses Timeout, with zero meaning "use the runner
// default".
func (c Config) ShellTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SPEAKERUP_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("SPEAKERUP_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("SPEAKERUP_DARK_MODE"); v != "" {
		c.DarkMode = v == "1" || v == "true"
	}
}
