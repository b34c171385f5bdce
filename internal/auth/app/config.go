package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: shared HS256 signing secret
	Issuer    string // Issuer claim for tokens (default: tenauth)
	Audience  string // Audience claim for tokens (default: tenauth-api)

	AccessTokenTTL      time.Duration // Access token lifetime (default: 15m)
	DatabaseFile        string        // Path to SQLite database file (default: ./tenauth.db)
	PepperFile          string        // Path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:           os.Getenv("AUTH_JWT_SECRET"),
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "tenauth"),
		Audience:            getEnvOrDefault("AUTH_AUDIENCE", "tenauth-api"),
		AccessTokenTTL:      getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", 15*time.Minute),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "tenauth.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
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

	// e.g. "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
