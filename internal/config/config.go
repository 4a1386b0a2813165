package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/Mavwarf/iconize/internal/imageio"
	"github.com/Mavwarf/iconize/internal/paths"
)

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"

// Config holds tool settings. Every field is optional; a missing config
// file yields Default().
type Config struct {
	LogLevel    string `json:"log_level,omitempty"`
	Filter      string `json:"filter,omitempty"`  // resample filter, see imageio.FilterNames
	Workers     int    `json:"workers,omitempty"` // parallel resizes, 0 = one per CPU
	History     bool   `json:"history,omitempty"`
	HistoryPath string `json:"history_path,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:    DefaultLogLevel,
		Filter:      imageio.DefaultFilter,
		HistoryPath: filepath.Join(paths.DataDir(), paths.HistoryFileName),
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; must exist)
//  2. iconize-config.json next to the running binary
//  3. ~/.config/iconize/iconize-config.json
//
// When no file is found the defaults are returned. The second return value
// is the file that was read, or "" for defaults.
func Load(explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := readConfig(explicitPath)
		return cfg, explicitPath, err
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			cfg, err := readConfig(p)
			return cfg, p, err
		}
	}

	// User config directory
	p := filepath.Join(paths.DataDir(), paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		cfg, err := readConfig(p)
		return cfg, p, err
	}

	return Default(), "", nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// envOverrides mirrors Config for environment variables. Empty/zero values
// mean "not set".
type envOverrides struct {
	LogLevel    string `env:"ICONIZE_LOG_LEVEL"`
	Filter      string `env:"ICONIZE_FILTER"`
	Workers     int    `env:"ICONIZE_WORKERS"`
	History     string `env:"ICONIZE_HISTORY"`
	HistoryPath string `env:"ICONIZE_HISTORY_PATH"`
}

// ApplyEnv overrides cfg with any ICONIZE_* environment variables that are
// set.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Filter != "" {
		cfg.Filter = o.Filter
	}
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	if o.History != "" {
		v, err := strconv.ParseBool(o.History)
		if err != nil {
			return fmt.Errorf("ICONIZE_HISTORY: %w", err)
		}
		cfg.History = v
	}
	if o.HistoryPath != "" {
		cfg.HistoryPath = o.HistoryPath
	}
	return nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := imageio.Filter(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.History && c.HistoryPath == "" {
		return fmt.Errorf("history is enabled but history_path is empty")
	}
	return nil
}
