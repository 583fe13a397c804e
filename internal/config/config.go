// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	GithubToken       string        `mapstructure:"GITHUB_TOKEN"`
	GithubUser        string        `mapstructure:"GITHUB_USER"`
	GithubAPIURL      string        `mapstructure:"GITHUB_API_URL"`
	OutputDir         string        `mapstructure:"OUTPUT_DIR"`
	IncludeForks      bool          `mapstructure:"INCLUDE_FORKS"`
	WorkerConcurrency int           `mapstructure:"WORKER_CONCURRENCY"`
	StatsMaxAttempts  int           `mapstructure:"STATS_MAX_ATTEMPTS"`
	StatsInitialDelay time.Duration `mapstructure:"STATS_INITIAL_DELAY"`
	EnrichThrottle    time.Duration `mapstructure:"ENRICH_THROTTLE"`
	DBURL             string        `mapstructure:"DB_URL"`
	DBKeepHistory     bool          `mapstructure:"DB_KEEP_HISTORY"`
	SyncInterval      time.Duration `mapstructure:"SYNC_INTERVAL"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR"`
}

var keys = []string{
	"LOG_LEVEL", "GITHUB_TOKEN", "GITHUB_USER", "GITHUB_API_URL", "OUTPUT_DIR",
	"INCLUDE_FORKS", "WORKER_CONCURRENCY", "STATS_MAX_ATTEMPTS", "STATS_INITIAL_DELAY",
	"ENRICH_THROTTLE", "DB_URL", "DB_KEEP_HISTORY", "SYNC_INTERVAL", "HTTP_ADDR",
}

// LoadConfig reads configuration from a .env file in the working directory and/or environment variables.
func LoadConfig() (*Config, error) {
	return load(".")
}

func load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OUTPUT_DIR", "data")
	v.SetDefault("INCLUDE_FORKS", false)
	v.SetDefault("WORKER_CONCURRENCY", 8)
	v.SetDefault("STATS_MAX_ATTEMPTS", 6)
	v.SetDefault("STATS_INITIAL_DELAY", "1.5s")
	v.SetDefault("ENRICH_THROTTLE", "120ms")
	v.SetDefault("DB_KEEP_HISTORY", false)
	v.SetDefault("SYNC_INTERVAL", "1h")
	v.SetDefault("HTTP_ADDR", ":8080")

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(configPath)
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables. Keys without a default must be bound
	// explicitly or Unmarshal never sees them.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GithubUser == "" {
		return errors.New("GITHUB_USER is a required configuration field")
	}
	if c.WorkerConcurrency < 1 {
		return errors.New("WORKER_CONCURRENCY must be at least 1")
	}
	if c.StatsMaxAttempts < 1 {
		return errors.New("STATS_MAX_ATTEMPTS must be at least 1")
	}
	if c.StatsInitialDelay < 0 || c.EnrichThrottle < 0 {
		return errors.New("STATS_INITIAL_DELAY and ENRICH_THROTTLE must not be negative")
	}
	if c.SyncInterval <= 0 {
		return errors.New("SYNC_INTERVAL must be positive")
	}
	return nil
}
