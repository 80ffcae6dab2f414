package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at a nonexistent overlay so a developer's local
// config.yaml cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("LEADPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ScanTimeout)
	assert.Equal(t, "http://localhost:9000", cfg.Harvest.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Harvest.Timeout)
	assert.Equal(t, 365, cfg.Harvest.PastDays)
	assert.Equal(t, 200, cfg.Harvest.Limit)
	assert.Equal(t, "investor_friendly", cfg.Harvest.Preset)
	assert.False(t, cfg.Harvest.RequireAgentEmail)
	assert.Equal(t, 2, cfg.Harvest.MinListings)
	assert.True(t, cfg.Security.EnableCORS)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LEADPULSE_SERVER_PORT", "9090")
	t.Setenv("LEADPULSE_HARVEST_BASE_URL", "http://provider:7000")
	t.Setenv("LEADPULSE_HARVEST_PRESET", "cash_flow")
	t.Setenv("LEADPULSE_HARVEST_REQUIRE_AGENT_EMAIL", "true")
	t.Setenv("LEADPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://provider:7000", cfg.Harvest.BaseURL)
	assert.Equal(t, "cash_flow", cfg.Harvest.Preset)
	assert.True(t, cfg.Harvest.RequireAgentEmail)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  port: 7070\nharvest:\n  base_url: http://file:9000\n"), 0o600))

	t.Setenv("LEADPULSE_CONFIG", path)
	t.Setenv("LEADPULSE_SERVER_PORT", "9090")
	t.Setenv("LEADPULSE_HARVEST_BASE_URL", "http://env:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://env:9000", cfg.Harvest.BaseURL)
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))
	t.Setenv("LEADPULSE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Harvest: HarvestConfig{
				BaseURL:     "http://localhost:9000",
				PastDays:    365,
				MinListings: 2,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: ""},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Harvest.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "non positive past days",
			mutate:  func(c *Config) { c.Harvest.PastDays = 0 },
			wantErr: "past_days must be positive",
		},
		{
			name:    "min listings below one",
			mutate:  func(c *Config) { c.Harvest.MinListings = 0 },
			wantErr: "min_listings must be at least 1",
		},
		{
			name: "rate limit enabled without rps",
			mutate: func(c *Config) {
				c.Security.RateLimit.Enabled = true
				c.Security.RateLimit.RPS = 0
			},
			wantErr: "rps must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
