// Package config loads the YAML configuration used by the CLI and the
// REST server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Solver  SolverConfig  `yaml:"solver"`
	Data    DataConfig    `yaml:"data"`
}

// ServerConfig contains REST server parameters.
type ServerConfig struct {
	Addr string `yaml:"addr"` // listen address, e.g. ":8080"
}

// LoggingConfig contains logging parameters.
type LoggingConfig struct {
	Verbosity int `yaml:"verbosity"` // 0=error 1=info 2=debug 3=trace
}

// SolverConfig overrides the exact volatility solver's bounds.
type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"` // Newton-Raphson iteration budget
	Tolerance     float64 `yaml:"tolerance"`      // convergence tolerance in price units
}

// DataConfig selects the market data provider used by quote-driven
// commands.
type DataConfig struct {
	Provider string `yaml:"provider"`          // "synthetic" or "polygon"
	APIKey   string `yaml:"api_key,omitempty"` // required for polygon
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 3 {
		return fmt.Errorf("logging.verbosity must be between 0 and 3")
	}
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive")
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver.tolerance must be positive")
	}
	switch c.Data.Provider {
	case "synthetic":
	case "polygon":
		if c.Data.APIKey == "" {
			return fmt.Errorf("data.api_key is required for the polygon provider")
		}
	default:
		return fmt.Errorf("unknown data.provider: %s", c.Data.Provider)
	}
	return nil
}

// Default returns a configuration with sensible defaults: a synthetic
// data provider and info-level logging.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Verbosity: 1},
		Solver:  SolverConfig{MaxIterations: 100, Tolerance: 1e-6},
		Data:    DataConfig{Provider: "synthetic"},
	}
}
