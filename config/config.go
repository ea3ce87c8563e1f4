package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"furniture-catalog/logger"

	"github.com/joho/godotenv"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
}

type Config struct {
	Port           string
	AppEnv         string
	DatabaseURL    string
	CORSOrigins    []string
	RedisURL       string
	CacheTTL       time.Duration
	AdminRateLimit int
	TracingEnabled bool
	SeedOnStart    bool
}

func LoadEnv() error {
	// Try to load .env file if it exists (for local development)
	// In production, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		// .env file not found is not an error
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv(log *logger.Logger) error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("REDIS_URL") == "" {
		log.Warn("REDIS_URL not set - product list cache disabled")
	}
	if os.Getenv("CORS_ORIGINS") == "" {
		log.Warn("CORS_ORIGINS not set - allowing local storefront origins only", "origins", defaultCORSOrigins)
	}

	return nil
}

// Load reads the typed configuration. Malformed numbers and booleans fall
// back to their defaults.
func Load() *Config {
	return &Config{
		Port:           GetEnv("PORT", "3000"),
		AppEnv:         GetEnv("APP_ENV", "development"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CORSOrigins:    getEnvSlice("CORS_ORIGINS", defaultCORSOrigins),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		AdminRateLimit: getEnvInt("ADMIN_RATE_LIMIT_PER_MINUTE", 60),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		SeedOnStart:    getEnvBool("SEED_ON_START", false),
	}
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
