// Package config loads shapematch tool configuration from file, environment
// variables, and defaults.
package config

import "errors"

// Config is the top-level configuration struct for shapematch.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	JSON        bool   `mapstructure:"json"`
	Environment string `mapstructure:"environment"`
}

// ScanConfig holds file scanning settings.
type ScanConfig struct {
	// MaxFileSize is the largest file, in bytes, the scanner will parse.
	MaxFileSize int `mapstructure:"max_file_size"`

	// Workers is the number of concurrent file workers. Zero means one
	// worker per CPU.
	Workers int `mapstructure:"workers"`
}

// OutputConfig holds result rendering settings.
type OutputConfig struct {
	// Format selects the dump format for the parse command: json or yaml.
	Format string `mapstructure:"format"`

	// Color enables colored terminal output.
	Color bool `mapstructure:"color"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidMaxFileSize indicates the max file size is not positive.
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size must be positive")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("scan.workers must be non-negative")
	// ErrInvalidFormat indicates the output format is not json or yaml.
	ErrInvalidFormat = errors.New("output.format must be json or yaml")
)

// Validate checks configuration invariants.
func (cfg *Config) Validate() error {
	if cfg.Scan.MaxFileSize <= 0 {
		return ErrInvalidMaxFileSize
	}

	if cfg.Scan.Workers < 0 {
		return ErrInvalidWorkers
	}

	if cfg.Output.Format != "json" && cfg.Output.Format != "yaml" {
		return ErrInvalidFormat
	}

	return nil
}
