package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	DevMode         bool
	BenchmarkSymbol string // benchmark for beta calculation
	SparklinePoints int    // default number of sparkline points

	// Cron schedules (seconds-granularity) for the automatic quote-cache
	// bust around market open/close. Comma-separated; empty disables it.
	CacheBustSchedules []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 5001),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		BenchmarkSymbol:    getEnv("BENCHMARK_SYMBOL", "SPY"),
		SparklinePoints:    getEnvAsInt("SPARKLINE_POINTS", 20),
		CacheBustSchedules: getEnvAsList("CACHE_BUST_SCHEDULES", "0 30 9 * * MON-FRI,0 0 16 * * MON-FRI"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be a valid port number, got %d", c.Port)
	}

	if c.BenchmarkSymbol == "" {
		return fmt.Errorf("BENCHMARK_SYMBOL is required")
	}

	if c.SparklinePoints <= 0 {
		return fmt.Errorf("SPARKLINE_POINTS must be positive, got %d", c.SparklinePoints)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
