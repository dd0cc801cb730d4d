// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server binary needs at startup.
type Config struct {
	Port           int
	DBPath         string
	RedisAddr      string // empty means in-memory caching
	CacheTTLHours  int
	AllowedOrigins []string
	OTLPEndpoint   string // empty means spans are not exported
	ServiceName    string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present; a missing file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnvInt("PORT", 8080),
		DBPath:         getEnvString("DB_PATH", "mortgage.db"),
		RedisAddr:      getEnvString("REDIS_ADDR", ""),
		CacheTTLHours:  getEnvInt("CACHE_TTL_HOURS", 24),
		AllowedOrigins: splitCSV(getEnvString("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")),
		OTLPEndpoint:   getEnvString("OTEL_ENDPOINT", ""),
		ServiceName:    getEnvString("OTEL_SERVICE_NAME", "mortgage-engine"),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
