// Package config provides configuration management for the wealth tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	apperrors "networth-cli/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Display  DisplayConfig  `mapstructure:"display"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Fire     FireConfig     `mapstructure:"fire"`
	Stress   StressConfig   `mapstructure:"stress"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DisplayConfig holds presentation-related configuration.
type DisplayConfig struct {
	Currency     string `mapstructure:"currency"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// ForecastConfig holds forecast defaults.
type ForecastConfig struct {
	DefaultYears int `mapstructure:"default_years"`
}

// FireConfig holds FIRE calculator defaults.
type FireConfig struct {
	WithdrawalRate float64 `mapstructure:"withdrawal_rate"` // annual %
	InflationRate  float64 `mapstructure:"inflation_rate"`  // annual %
}

// StressConfig holds stress-test defaults.
type StressConfig struct {
	Iterations int `mapstructure:"iterations"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/networth"
	}
	return filepath.Join(home, ".config", "networth")
}

// DatabasePath returns the path of the profile database within a config dir.
func DatabasePath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "networth.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, fmt.Errorf("creating config template: %w", err)
			}
		} else {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("display.currency", "£")
	v.SetDefault("display.color_enabled", true)
	v.SetDefault("display.date_format", "2006-01-02")
	v.SetDefault("forecast.default_years", 30)
	v.SetDefault("fire.withdrawal_rate", 4.0)
	v.SetDefault("fire.inflation_rate", 2.5)
	v.SetDefault("stress.iterations", 200)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NETWORTH_CURRENCY"); v != "" {
		cfg.Display.Currency = v
	}
	if v := os.Getenv("NETWORTH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NETWORTH_STRESS_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Stress.Iterations = n
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Forecast.DefaultYears < 1 || c.Forecast.DefaultYears > 100 {
		return fmt.Errorf("%w: forecast.default_years must be between 1 and 100", apperrors.ErrConfigInvalid)
	}
	if c.Fire.WithdrawalRate < 0 || c.Fire.WithdrawalRate > 100 {
		return fmt.Errorf("%w: fire.withdrawal_rate must be between 0 and 100", apperrors.ErrConfigInvalid)
	}
	if c.Fire.InflationRate < -10 || c.Fire.InflationRate > 100 {
		return fmt.Errorf("%w: fire.inflation_rate must be between -10 and 100", apperrors.ErrConfigInvalid)
	}
	if c.Stress.Iterations < 0 {
		return fmt.Errorf("%w: stress.iterations must be non-negative", apperrors.ErrConfigInvalid)
	}
	return nil
}

const configTemplate = `# networth configuration

[display]
# Currency symbol used in output.
currency = "£"
color_enabled = true
date_format = "2006-01-02"

[forecast]
# Horizon in years when no goal is set.
default_years = 30

[fire]
# Safe withdrawal rate, annual %.
withdrawal_rate = 4.0
# Assumed inflation, annual %.
inflation_rate = 2.5

[stress]
# Default Monte Carlo iteration count.
iterations = 200

[logging]
level = "info"
console = true
file = true
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
