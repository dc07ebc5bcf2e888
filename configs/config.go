package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port                  string
	Environment           string
	OpenWeatherMapAPIKey  string
	OpenWeatherMapBaseURL string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		OpenWeatherMapAPIKey:  getEnv("OPENWEATHERMAP_API_KEY", ""),
		OpenWeatherMapBaseURL: getEnv("OPENWEATHERMAP_BASE_URL", "https://api.openweathermap.org"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
