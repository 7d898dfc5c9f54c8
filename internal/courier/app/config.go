package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer       string        // Issuer claim for minted tokens (default: courier)
	DatabaseFile string        // Path to SQLite database file (default: ./courier.db)
	PepperFile   string        // Path to file containing pepper for password hashing (default: ./pepper)
	TokenTTL     time.Duration // Access token lifetime (default: 24h)

	// GateBrowsing restricts user listing and inbox/outbox reads; see
	// service.Guard. Defaults to off, matching the historical open surface.
	GateBrowsing bool

	// Argon2id cost overrides; zero keeps the library defaults.
	HashMemoryKiB   int
	HashIterations  int
	HashParallelism int

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("COURIER_ISSUER", "courier"),
		DatabaseFile: getEnvOrDefault("COURIER_DATABASE_FILE", "courier.db"),
		PepperFile:   getEnvOrDefault("COURIER_PEPPER_FILE", "pepper"),
		TokenTTL:     getEnvDurationOrDefault("COURIER_TOKEN_TTL", 24*time.Hour),
		GateBrowsing: getEnvBoolOrDefault("COURIER_GATE_BROWSING", false),

		HashMemoryKiB:   getEnvIntOrDefault("COURIER_HASH_MEMORY_KIB", 0),
		HashIterations:  getEnvIntOrDefault("COURIER_HASH_ITERATIONS", 0),
		HashParallelism: getEnvIntOrDefault("COURIER_HASH_PARALLELISM", 0),

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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
