// Package config loads the seam CLI configuration from seam.yml or
// seam.yaml in the working directory, with environment variable
// overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the seam CLI configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// OutputConfig controls how reports are rendered
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// CacheConfig controls the knowledge index cache
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// Formats accepted for output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Load loads the configuration from seam.yml or seam.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.color", true)
	v.SetDefault("cache.size", 128)

	// Set config name and paths
	v.SetConfigName("seam")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("SEAM")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q, got: %s", FormatText, FormatJSON, cfg.Output.Format)
	}
	if cfg.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be at least 1, got: %d", cfg.Cache.Size)
	}
	return nil
}
