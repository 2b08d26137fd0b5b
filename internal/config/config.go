package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Secret            string
	DatabaseDSN       string
	SQLitePath        string
	HTTPPort          string
	RedisAddr         string
	LogLevel          string
	LogFormat         string
	SeedAdminPassword string
}

// Load reads configuration from environment variables with reasonable
// defaults. A .env file, when present, overrides the environment.
func Load() Config {
	_ = godotenv.Overload()

	cfg := Config{
		Secret:            getEnv("SECRET", "dev_secret"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		SQLitePath:        getEnv("SQLITE_PATH", "batchboard.db"),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", cfg.HTTPPort)
		cfg.HTTPPort = "8080"
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
