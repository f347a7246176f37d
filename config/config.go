// Package config loads the settings of the rostersat command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/roster"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all rostersat settings.
type Config struct {
	// Problem to solve
	Roster roster.Params `yaml:"roster"`

	// Search settings
	Engine EngineConfig `yaml:"engine"`

	// Result persistence
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig configures the search.
type EngineConfig struct {
	Name  string `yaml:"name"`  // gophersat, gini
	Limit int    `yaml:"limit"` // Maximum number of rosters when All is set, 0 for no limit
	All   bool   `yaml:"all"`   // Enumerate rosters instead of stopping at the first one
}

// StoreConfig configures the result store.
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite database file; results are not saved if empty
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the default configuration: the yearly roster of a 15-operator, 8-machine workshop.
func Default() *Config {
	return &Config{
		Roster: roster.Params{
			Operators:       15,
			Days:            360,
			Machines:        8,
			JobDuration:     33,
			RelaxDuration:   23,
			VacancyDuration: 7,
			VacancyCount:    4,
			Coverage:        roster.CoverageExact,
		},
		Engine: EngineConfig{
			Name:  engine.Gophersat{}.Name(),
			Limit: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path, on top of the default configuration.
// Settings that are not in the file keep their default value.
// If the file does not exist, the default configuration is returned.
// Environment variables ROSTERSAT_ENGINE and ROSTERSAT_DB override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if name := os.Getenv("ROSTERSAT_ENGINE"); name != "" {
		c.Engine.Name = name
	}
	if path := os.Getenv("ROSTERSAT_DB"); path != "" {
		c.Store.Path = path
	}
}

// Level returns the minimal level of logged messages.
func (c *Config) Level() (zapcore.Level, error) {
	if c.Logging.Level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(c.Logging.Level)
}

// Validate validates the configuration. All detected problems are reported.
// Errors about the roster parameters wrap roster.ErrInvalidParams or roster.ErrInconsistentParams.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Roster.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := engine.New(c.Engine.Name); err != nil {
		errs = append(errs, err)
	}
	if c.Engine.Limit < 0 {
		errs = append(errs, fmt.Errorf("invalid engine limit %d", c.Engine.Limit))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("invalid logging level: %w", err))
	}
	return errors.Join(errs...)
}
