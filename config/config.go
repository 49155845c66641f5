package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port           string
	HTTPBindAddr   string
	APIEnabled     bool
	Environment    string
	LoggingConfig  LoggingConfig
	PostgresConfig PostgresConfig
	RedisConfig    RedisConfig
	ProviderConfig ProviderConfig
	SearchConfig   SearchConfig
	JanitorConfig  JanitorConfig
	HistoryEnabled bool
	InitSchema     bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection configuration. Redis is optional: with
// Enabled false the app caches in process memory instead.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// ProviderConfig holds the flight-data service connection configuration
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SearchConfig holds search orchestration configuration
type SearchConfig struct {
	CacheTTL          time.Duration
	MaxConcurrency    int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
	AlternateAirports bool
}

// JanitorConfig holds background housekeeping configuration
type JanitorConfig struct {
	Enabled          bool
	PruneSchedule    string
	HistoryRetention time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "8080")
	httpBindAddr := getEnv("HTTP_BIND_ADDR", "")
	environment := getEnv("ENVIRONMENT", "development")
	apiEnabled, _ := strconv.ParseBool(getEnv("API_ENABLED", "true"))
	historyEnabled, _ := strconv.ParseBool(getEnv("HISTORY_ENABLED", "true"))
	initSchema, _ := strconv.ParseBool(getEnv("INIT_SCHEMA", "true"))

	loggingConfig := LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	postgresConfig := PostgresConfig{
		Host:     getEnv("DB_HOST", "postgres"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "wayfarer"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "wayfarer"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	redisEnabled, _ := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisConfig := RedisConfig{
		Enabled:  redisEnabled,
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "30s"))
	if err != nil {
		providerTimeout = 30 * time.Second
	}
	providerConfig := ProviderConfig{
		BaseURL: getEnv("PROVIDER_BASE_URL", "http://localhost:9090"),
		APIKey:  getEnv("PROVIDER_API_KEY", ""),
		Timeout: providerTimeout,
	}

	cacheTTL, _ := time.ParseDuration(getEnv("SEARCH_CACHE_TTL", "5m"))
	maxConcurrency, _ := strconv.Atoi(getEnv("SEARCH_MAX_CONCURRENCY", "3"))
	retryMaxAttempts, _ := strconv.Atoi(getEnv("SEARCH_RETRY_MAX_ATTEMPTS", "3"))
	retryInitialDelay, _ := time.ParseDuration(getEnv("SEARCH_RETRY_INITIAL_DELAY", "1s"))
	retryMaxDelay, _ := time.ParseDuration(getEnv("SEARCH_RETRY_MAX_DELAY", "10s"))
	alternateAirports, _ := strconv.ParseBool(getEnv("SEARCH_ALTERNATE_AIRPORTS", "false"))

	searchConfig := SearchConfig{
		CacheTTL:          cacheTTL,
		MaxConcurrency:    maxConcurrency,
		RetryMaxAttempts:  retryMaxAttempts,
		RetryInitialDelay: retryInitialDelay,
		RetryMaxDelay:     retryMaxDelay,
		AlternateAirports: alternateAirports,
	}

	janitorEnabled, _ := strconv.ParseBool(getEnv("JANITOR_ENABLED", "true"))
	historyRetention, _ := time.ParseDuration(getEnv("JANITOR_HISTORY_RETENTION", "720h"))
	janitorConfig := JanitorConfig{
		Enabled:          janitorEnabled,
		PruneSchedule:    getEnv("JANITOR_PRUNE_SCHEDULE", "@every 1m"),
		HistoryRetention: historyRetention,
	}

	return &Config{
		Port:           port,
		HTTPBindAddr:   httpBindAddr,
		APIEnabled:     apiEnabled,
		Environment:    environment,
		LoggingConfig:  loggingConfig,
		PostgresConfig: postgresConfig,
		RedisConfig:    redisConfig,
		ProviderConfig: providerConfig,
		SearchConfig:   searchConfig,
		JanitorConfig:  janitorConfig,
		HistoryEnabled: historyEnabled,
		InitSchema:     initSchema,
	}, nil
}

// LoadTestConfig loads test configuration
func LoadTestConfig() *Config {
	return &Config{
		PostgresConfig: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "wayfarer"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME_TEST", "wayfarer_test"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisConfig: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		SearchConfig: SearchConfig{
			CacheTTL:          5 * time.Minute,
			MaxConcurrency:    3,
			RetryMaxAttempts:  3,
			RetryInitialDelay: time.Second,
			RetryMaxDelay:     10 * time.Second,
		},
		Environment: "test",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if len(strings.TrimSpace(value)) == 0 {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
