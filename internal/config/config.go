package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	GraduationThreshold int
	PracticeLimit       int
	ForecastDays        int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:repaso.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		GraduationThreshold: envIntOr("GRADUATION_THRESHOLD", 2),
		PracticeLimit:       envIntOr("PRACTICE_LIMIT", 20),
		ForecastDays:        envIntOr("FORECAST_DAYS", 7),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.GraduationThreshold < 1 {
		problems = append(problems, "GRADUATION_THRESHOLD must be at least 1")
	}
	if c.PracticeLimit < 1 {
		problems = append(problems, "PRACTICE_LIMIT must be at least 1")
	}
	if c.ForecastDays < 1 {
		problems = append(problems, "FORECAST_DAYS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
