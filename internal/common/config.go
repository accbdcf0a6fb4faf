package common

import (
	"os"
	"strconv"
	"time"

	"github.com/studyscope/pdf-summarizer/constants"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// LLMConfig holds OpenRouter-related configuration
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

// RateLimitConfig holds the per-session admission limits
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":5000"),
		},
		LLM: LLMConfig{
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			Model:   getEnv("OPENROUTER_MODEL", constants.DefaultModel),
			Referer: getEnv("OPENROUTER_REFERER", "http://localhost:5000"),
			Title:   getEnv("OPENROUTER_TITLE", "Academic PDF Summarizer"),
			Timeout: getEnvAsDuration("OPENROUTER_TIMEOUT", 45*time.Second),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvAsInt("MAX_REQUESTS_PER_WINDOW", 10),
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENROUTER_API_KEY is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.RateLimit.MaxRequests <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_REQUESTS_PER_WINDOW must be positive", ErrInvalidInput)
	}
	return nil
}
