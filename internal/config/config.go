package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Weather    WeatherConfig
	Generation GenerationConfig
	CORS       CORSConfig
	LogLevel   string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	RequestTimeout  int
}

type CatalogConfig struct {
	Path string // filesystem path or http(s) URL, optionally gzipped
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout int
}

type GenerationConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 75),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", 60),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/food_data.json"),
		},
		Weather: WeatherConfig{
			APIKey:  os.Getenv("OPENWEATHER_API_KEY"),
			BaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			Timeout: getEnvAsInt("WEATHER_TIMEOUT", 10),
		},
		Generation: GenerationConfig{
			APIKey:  os.Getenv("PERPLEXITY_API_KEY"),
			BaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			Model:   getEnv("PERPLEXITY_MODEL", "sonar-pro"),
			Timeout: getEnvAsInt("GENERATION_TIMEOUT", 60),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}

	if c.Weather.BaseURL == "" {
		return fmt.Errorf("OPENWEATHER_BASE_URL is required")
	}

	if c.Generation.BaseURL == "" || c.Generation.Model == "" {
		return fmt.Errorf("PERPLEXITY_BASE_URL and PERPLEXITY_MODEL are required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MissingKeys lists the upstream API keys that are not configured.
// The server still starts without them; the affected calls fail at request time.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.Weather.APIKey == "" {
		missing = append(missing, "OPENWEATHER_API_KEY")
	}
	if c.Generation.APIKey == "" {
		missing = append(missing, "PERPLEXITY_API_KEY")
	}
	return missing
}

// Seconds converts a timeout setting to a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
