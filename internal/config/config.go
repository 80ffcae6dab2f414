// Package config loads application configuration from environment variables
// with an optional YAML file overlay. Environment values win.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Harvest  HarvestConfig  `yaml:"harvest" envconfig:"HARVEST"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// ScanTimeout bounds one scan request end to end, including the
	// provider calls.
	ScanTimeout time.Duration `yaml:"scan_timeout" envconfig:"SCAN_TIMEOUT" default:"60s"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"*"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"10"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"20"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// HarvestConfig configures the external scraping/analytics provider and the
// scan defaults forwarded to it.
type HarvestConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL" default:"http://localhost:9000"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"45s"`
	// PastDays is the listing recency window requested from the provider.
	PastDays int `yaml:"past_days" envconfig:"PAST_DAYS" default:"365"`
	// Limit caps the number of listings fetched per scan. Zero means no cap.
	Limit int `yaml:"limit" envconfig:"LIMIT" default:"200"`
	// Preset is the provider-side filter preset used by elite scans.
	Preset string `yaml:"preset" envconfig:"PRESET" default:"investor_friendly"`
	// RequireAgentEmail is forwarded to the provider on elite scans. The
	// simple pipeline always requires an email at grouping time regardless.
	RequireAgentEmail bool `yaml:"require_agent_email" envconfig:"REQUIRE_AGENT_EMAIL" default:"false"`
	// MinListings is the default wholesale-friendliness floor when the
	// request does not specify one.
	MinListings int `yaml:"min_listings" envconfig:"MIN_LISTINGS" default:"2"`
}

// Load loads configuration from environment variables and, if present, a
// config.yaml overlay next to the binary.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LEADPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := configFilePath(); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the overlay file path, or "" when absent.
func configFilePath() string {
	path := os.Getenv("LEADPULSE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config under env config (env takes precedence for
// every field the environment actually set).
func mergeConfigs(fileCfg, envCfg Config) Config {
	out := envCfg
	if out.Server.Port == 0 {
		out.Server.Port = fileCfg.Server.Port
	}
	if out.Server.ReadTimeout == 0 {
		out.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if out.Server.WriteTimeout == 0 {
		out.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if out.Server.ScanTimeout == 0 {
		out.Server.ScanTimeout = fileCfg.Server.ScanTimeout
	}
	if out.Harvest.BaseURL == "" {
		out.Harvest.BaseURL = fileCfg.Harvest.BaseURL
	}
	if out.Harvest.PastDays == 0 {
		out.Harvest.PastDays = fileCfg.Harvest.PastDays
	}
	if out.Harvest.MinListings == 0 {
		out.Harvest.MinListings = fileCfg.Harvest.MinListings
	}
	if out.Logging.Level == "" {
		out.Logging.Level = fileCfg.Logging.Level
	}
	return out
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Harvest.BaseURL == "" {
		return fmt.Errorf("harvest.base_url is required")
	}
	if c.Harvest.PastDays <= 0 {
		return fmt.Errorf("harvest.past_days must be positive, got %d", c.Harvest.PastDays)
	}
	if c.Harvest.MinListings < 1 {
		return fmt.Errorf("harvest.min_listings must be at least 1, got %d", c.Harvest.MinListings)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled")
	}
	return nil
}
