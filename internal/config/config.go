package config

import (
	"os"
	"strconv"
	"time"

	"jurimetrics/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Server    ServerConfig
	Analytics AnalyticsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// RedisConfig holds the fast baseline-cache tier settings. An empty Addr
// disables the tier; reads then go straight to the in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AIConfig holds generative-provider settings. SecondaryKey empty means no
// fallback provider is configured.
type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	SecondaryKey   string
	SecondaryURL   string
	SecondaryModel string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
	Enabled        bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalyticsConfig holds tunables for the analytics pipeline
type AnalyticsConfig struct {
	DecayRate      float64
	MinWeight      float64
	BaselineTTL    time.Duration
	BaselineWindow time.Duration // Trailing peer-pool window
	MaxAIDocuments int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		AI: AIConfig{
			APIKey:         os.Getenv("ANALYSIS_API_KEY"),
			BaseURL:        getEnvOrDefault("ANALYSIS_BASE_URL", "https://api.openai.com/v1"),
			Model:          getEnvOrDefault("ANALYSIS_MODEL", "gpt-4o-mini"),
			SecondaryKey:   os.Getenv("ANALYSIS_SECONDARY_KEY"),
			SecondaryURL:   getEnvOrDefault("ANALYSIS_SECONDARY_URL", ""),
			SecondaryModel: getEnvOrDefault("ANALYSIS_SECONDARY_MODEL", ""),
			MaxTokens:      getEnvIntOrDefault("ANALYSIS_MAX_TOKENS", 4000),
			Temperature:    getEnvFloatOrDefault("ANALYSIS_TEMPERATURE", 0.2),
			Timeout:        getEnvDurationOrDefault("ANALYSIS_TIMEOUT", 45*time.Second),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Analytics: AnalyticsConfig{
			DecayRate:      getEnvFloatOrDefault("DECAY_RATE", 0.95),
			MinWeight:      getEnvFloatOrDefault("MIN_WEIGHT", 0.5),
			BaselineTTL:    getEnvDurationOrDefault("BASELINE_TTL", time.Hour),
			BaselineWindow: getEnvDurationOrDefault("BASELINE_WINDOW", 3*365*24*time.Hour),
			MaxAIDocuments: getEnvIntOrDefault("MAX_AI_DOCUMENTS", 60),
		},
	}
	config.AI.Enabled = config.AI.APIKey != ""

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Analytics.DecayRate <= 0 || config.Analytics.DecayRate > 1 {
		return errors.ConfigInvalid("DECAY_RATE must be in (0, 1]")
	}
	if config.Analytics.MinWeight < 0 || config.Analytics.MinWeight > 1 {
		return errors.ConfigInvalid("MIN_WEIGHT must be in [0, 1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
