// Package config provides configuration management for the application.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	FunctionName string
	Stage        string
	LogLevel     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		FunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", "batch-record-processor"),
		Stage:        getEnv("STAGE", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
