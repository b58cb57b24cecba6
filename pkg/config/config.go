/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/pakfile/pkg/codec"
)

// Config represents the pakfile configuration
type Config struct {
	Codec   Codec   `yaml:"codec"`
	Logging Logging `yaml:"logging"`
}

// Codec contains archive codec settings
type Codec struct {
	TableBound string `yaml:"table_bound"` // header | buffer
	CopyData   bool   `yaml:"copy_data"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Codec: Codec{
			TableBound: codec.TableBoundHeader.String(),
			CopyData:   false,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every setting has a known value
func (c *Config) Validate() error {
	if _, err := codec.ParseTableBound(c.Codec.TableBound); err != nil {
		return fmt.Errorf("codec.table_bound: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}

// NewLogger builds a zerolog logger writing to w at the configured level
func (l Logging) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	if l.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// CodecOptions converts the configuration into archive codec options.
// Codec log output is written to w.
func (c *Config) CodecOptions(w io.Writer) ([]codec.Option, error) {
	bound, err := codec.ParseTableBound(c.Codec.TableBound)
	if err != nil {
		return nil, err
	}

	logger, err := c.Logging.NewLogger(w)
	if err != nil {
		return nil, err
	}

	return []codec.Option{
		codec.WithTableBound(bound),
		codec.WithCopyData(c.Codec.CopyData),
		codec.WithLogger(logger.With().Str("component", "codec").Logger()),
	}, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./pakfile.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "pakfile")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
