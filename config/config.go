// Package config loads settings for the matchr command and MCP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Transport names accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the complete matchr configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Rank    RankConfig    `yaml:"rank"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig describes the MCP server identity and transport.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"` // stdio or http
	Addr      string `yaml:"addr"`      // listen address for http
}

// RankConfig tunes ranking and result presentation.
type RankConfig struct {
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // 0 = library default, <0 disables
	MinScore          int `yaml:"min_score"`          // drop results below this score
	Limit             int `yaml:"limit"`              // 0 = unlimited
}

// LogConfig sets the log level (zerolog level names).
type LogConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus endpoint of the http transport.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "matchr",
			Version:   "0.1.0",
			Transport: TransportStdio,
			Addr:      "127.0.0.1:8765",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Name) == "" {
		return fmt.Errorf("%w: server name cannot be empty", ErrInvalidConfig)
	}
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return fmt.Errorf("%w: server addr is required for http transport", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported transport %q", ErrInvalidConfig, c.Server.Transport)
	}

	if c.Rank.Workers < 0 {
		return fmt.Errorf("%w: rank workers must not be negative, got %d", ErrInvalidConfig, c.Rank.Workers)
	}
	if c.Rank.MinScore < 0 || c.Rank.MinScore > 100 {
		return fmt.Errorf("%w: rank min_score must be between 0 and 100, got %d", ErrInvalidConfig, c.Rank.MinScore)
	}
	if c.Rank.Limit < 0 {
		return fmt.Errorf("%w: rank limit must not be negative, got %d", ErrInvalidConfig, c.Rank.Limit)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics path must start with /, got %q", ErrInvalidConfig, c.Metrics.Path)
	}
	return nil
}
