package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-supplied settings.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	// Comma-separated broker list; empty disables event publishing.
	KafkaBrokers string

	RateLimit      RateLimitConfig
	LoadSampleData bool
}

type RateLimitConfig struct {
	Capacity     int
	RefillPeriod time.Duration
}

// LoadConfig reads configuration from the environment, loading .env first if
// present. Missing optional values fall back to defaults.
func LoadConfig() (*Config, error) {
	// .env is for local development only; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		RateLimit: RateLimitConfig{
			Capacity:     getEnvInt("RATE_LIMIT_CAPACITY", 20),
			RefillPeriod: time.Duration(getEnvInt("RATE_LIMIT_PERIOD_MINUTES", 1)) * time.Minute,
		},
		LoadSampleData: getEnvBool("LOAD_SAMPLE_DATA", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RateLimit.Capacity <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", cfg.RateLimit.Capacity)
	}
	if cfg.RateLimit.RefillPeriod <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PERIOD_MINUTES must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode. Sample
// data seeding is disabled there regardless of LOAD_SAMPLE_DATA.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
