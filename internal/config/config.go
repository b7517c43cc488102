// Package config loads rubico settings from the environment and an optional
// .env file using Viper.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDBPath        = "rubico-app.db"
	DefaultLogLevel      = "warn"
	DefaultBusyTimeoutMS = 5000
)

// Config holds the settings for one rubico process.
type Config struct {
	// DBPath is the SQLite file holding both collections.
	DBPath string `mapstructure:"RUBICO_DB_PATH"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"RUBICO_LOG_LEVEL"`
	// BusyTimeoutMS is how long SQLite waits on a locked database.
	BusyTimeoutMS int `mapstructure:"RUBICO_BUSY_TIMEOUT_MS"`
}

// Load reads .env from the working directory (if present), then the
// environment, which overrides it.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("RUBICO_DB_PATH", DefaultDBPath)
	v.SetDefault("RUBICO_LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("RUBICO_BUSY_TIMEOUT_MS", DefaultBusyTimeoutMS)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: RUBICO_DB_PATH must be set")
	}
	if c.BusyTimeoutMS <= 0 {
		return errors.New("config: RUBICO_BUSY_TIMEOUT_MS must be positive")
	}
	return nil
}
