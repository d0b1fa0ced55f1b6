package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SigningSecret string        // Required: HMAC secret for identity tokens
	Issuer        string        // Optional: issuer claim for tokens (default: noted)
	TokenTTL      time.Duration // Optional: identity token lifetime (default: 1h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./noted.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file the way the usual local dev setup expects.
func LoadConfig() Config {
	_ = godotenv.Load() // missing .env is fine; real env always wins

	return Config{
		SigningSecret:       os.Getenv("NOTED_SIGNING_SECRET"),
		Issuer:              getEnvOrDefault("NOTED_ISSUER", "noted"),
		TokenTTL:            getEnvDurationOrDefault("NOTED_TOKEN_TTL", time.Hour),
		DatabaseFile:        getEnvOrDefault("NOTED_DATABASE_FILE", "noted.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
