package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Rate limiting (per client IP)
	RateLimitWhitelist []string
	AuthLimit          int
	AuthWindow         time.Duration
	AILimit            int
	AIWindow           time.Duration
	ProjectLimit       int
	ProjectWindow      time.Duration
	DefaultLimit       int
	DefaultWindow      time.Duration

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		GeminiAPIKey: mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),

		RateLimitWhitelist: getEnvAsList("RATE_LIMIT_WHITELIST"),
		AuthLimit:          getEnvAsIntOrDefault("RATE_LIMIT_AUTH_MAX", 5),
		AuthWindow:         getEnvAsMinutesOrDefault("RATE_LIMIT_AUTH_WINDOW_MIN", 15),
		AILimit:            getEnvAsIntOrDefault("RATE_LIMIT_AI_MAX", 10),
		AIWindow:           getEnvAsMinutesOrDefault("RATE_LIMIT_AI_WINDOW_MIN", 60),
		ProjectLimit:       getEnvAsIntOrDefault("RATE_LIMIT_PROJECT_MAX", 20),
		ProjectWindow:      getEnvAsMinutesOrDefault("RATE_LIMIT_PROJECT_WINDOW_MIN", 60),
		DefaultLimit:       getEnvAsIntOrDefault("RATE_LIMIT_DEFAULT_MAX", 100),
		DefaultWindow:      getEnvAsMinutesOrDefault("RATE_LIMIT_DEFAULT_WINDOW_MIN", 15),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsMinutesOrDefault(key string, defaultMinutes int) time.Duration {
	return time.Duration(getEnvAsIntOrDefault(key, defaultMinutes)) * time.Minute
}

func getEnvAsList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
