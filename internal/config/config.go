package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Push dispatch
	ExpoPushURL       string        `env:"EXPO_PUSH_URL" envDefault:"https://exp.host/--/api/v2/push/send"`
	PushBatchSize     int           `env:"PUSH_BATCH_SIZE" envDefault:"100"`
	PushTimeout       time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`
	PushSummaryWindow time.Duration `env:"PUSH_SUMMARY_WINDOW" envDefault:"2s"`

	// Gomero candidate selection
	GomeroSearchRadiusMeters float64 `env:"GOMERO_SEARCH_RADIUS_METERS" envDefault:"0"`
	GomeroMaxCandidates      int     `env:"GOMERO_MAX_CANDIDATES" envDefault:"50"`

	// Janitor
	PendingAlertTTL time.Duration `env:"PENDING_ALERT_TTL" envDefault:"30m"`
	JanitorSchedule string        `env:"JANITOR_SCHEDULE" envDefault:"@every 5m"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig loads the configuration from environment variables and an
// optional .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		ExpoPushURL:              getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		PushBatchSize:            getEnvAsInt("PUSH_BATCH_SIZE", 100),
		PushTimeout:              getEnvAsDuration("PUSH_TIMEOUT", 10*time.Second),
		PushSummaryWindow:        getEnvAsDuration("PUSH_SUMMARY_WINDOW", 2*time.Second),
		GomeroSearchRadiusMeters: getEnvAsFloat("GOMERO_SEARCH_RADIUS_METERS", 0),
		GomeroMaxCandidates:      getEnvAsInt("GOMERO_MAX_CANDIDATES", 50),
		PendingAlertTTL:          getEnvAsDuration("PENDING_ALERT_TTL", 30*time.Minute),
		JanitorSchedule:          getEnv("JANITOR_SCHEDULE", "@every 5m"),
	}

	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.PushBatchSize < 1 {
		return nil, fmt.Errorf("PUSH_BATCH_SIZE must be positive")
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment variable as int or a default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat returns the environment variable as float64 or a default.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns the environment variable as time.Duration or a default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
