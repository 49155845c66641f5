package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Environment)
	require.True(t, cfg.APIEnabled)
	require.Equal(t, "info", cfg.LoggingConfig.Level)
	require.Equal(t, "json", cfg.LoggingConfig.Format)
	require.Equal(t, 5*time.Minute, cfg.SearchConfig.CacheTTL)
	require.Equal(t, 3, cfg.SearchConfig.MaxConcurrency)
	require.Equal(t, 3, cfg.SearchConfig.RetryMaxAttempts)
	require.Equal(t, time.Second, cfg.SearchConfig.RetryInitialDelay)
	require.Equal(t, 10*time.Second, cfg.SearchConfig.RetryMaxDelay)
	require.Equal(t, 30*time.Second, cfg.ProviderConfig.Timeout)
	require.False(t, cfg.RedisConfig.Enabled)
	require.True(t, cfg.JanitorConfig.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEARCH_CACHE_TTL", "90s")
	t.Setenv("SEARCH_MAX_CONCURRENCY", "5")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("PROVIDER_BASE_URL", "https://flights.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, "debug", cfg.LoggingConfig.Level)
	require.Equal(t, 90*time.Second, cfg.SearchConfig.CacheTTL)
	require.Equal(t, 5, cfg.SearchConfig.MaxConcurrency)
	require.True(t, cfg.RedisConfig.Enabled)
	require.Equal(t, "https://flights.example.com", cfg.ProviderConfig.BaseURL)
}

func TestLoadTrimsWhitespace(t *testing.T) {
	t.Setenv("PORT", "  8081  ")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Port)
}

func TestLoadTestConfig(t *testing.T) {
	cfg := LoadTestConfig()
	require.Equal(t, "test", cfg.Environment)
	require.Equal(t, "wayfarer_test", cfg.PostgresConfig.DBName)
	require.Equal(t, 3, cfg.SearchConfig.MaxConcurrency)
}
