package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application. It is built once at
// startup and passed into the components that need it.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DatabaseURL string

	// JWT configuration
	JWTSecret          string
	JWTAlgorithm       string
	AccessTokenMinutes int

	// OpenAI configuration. The API key is optional: a missing key only
	// surfaces as an error when the AI endpoint is invoked.
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string
}

// Load creates a new Config instance from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("SECRET_KEY"),
		JWTAlgorithm:       getEnv("ALGORITHM", "HS256"),
		AccessTokenMinutes: 30,
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL:       getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
		}
		cfg.AccessTokenMinutes = minutes
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration values are present.
func Validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.JWTAlgorithm != "HS256" {
		return fmt.Errorf("unsupported token algorithm: %s", cfg.JWTAlgorithm)
	}
	if cfg.AccessTokenMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
