package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// テスト用の環境変数を設定
	testCases := map[string]string{
		"PORT":                    "9090",
		"ENVIRONMENT":             "test",
		"OPENWEATHERMAP_API_KEY":  "owm-test-key",
		"OPENWEATHERMAP_BASE_URL": "https://owm.example.com",
		"OPENAI_API_KEY":          "openai-test-key",
		"OPENAI_MODEL":            "gpt-4o-mini",
	}

	// 環境変数を設定
	for key, value := range testCases {
		os.Setenv(key, value)
	}

	// テスト後にクリーンアップ
	defer func() {
		for key := range testCases {
			os.Unsetenv(key)
		}
	}()

	// 設定を読み込み
	cfg := LoadConfig()

	// 検証
	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}

	if cfg.OpenWeatherMapAPIKey != "owm-test-key" {
		t.Errorf("Expected OpenWeatherMapAPIKey to be 'owm-test-key', got '%s'", cfg.OpenWeatherMapAPIKey)
	}

	if cfg.OpenWeatherMapBaseURL != "https://owm.example.com" {
		t.Errorf("Expected OpenWeatherMapBaseURL to be 'https://owm.example.com', got '%s'", cfg.OpenWeatherMapBaseURL)
	}

	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected OpenAIModel to be 'gpt-4o-mini', got '%s'", cfg.OpenAIModel)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// 環境変数をクリア
	vars := []string{
		"PORT", "ENVIRONMENT", "OPENWEATHERMAP_API_KEY",
		"OPENWEATHERMAP_BASE_URL", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "OPENAI_MODEL",
	}

	for _, v := range vars {
		os.Unsetenv(v)
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// デフォルト値の検証
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}

	if cfg.OpenWeatherMapBaseURL != "https://api.openweathermap.org" {
		t.Errorf("Expected default OpenWeatherMapBaseURL to be OpenWeatherMap, got '%s'", cfg.OpenWeatherMapBaseURL)
	}

	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("Expected default OpenAIModel to be 'gpt-4o', got '%s'", cfg.OpenAIModel)
	}
}
