package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SystemPromptConfig はsystem_prompt.yamlの構造を定義
type SystemPromptConfig struct {
	System struct {
		Role    string `yaml:"role"`
		Version string `yaml:"version"`
	} `yaml:"system"`

	Guidelines []string `yaml:"guidelines"`

	Constraints []string `yaml:"constraints"`
}

// defaultSystemPrompt はYAMLが読み込めない場合に使用する組み込みプロンプト
const defaultSystemPrompt = `You are a helpful weather assistant AI. Provide accurate, friendly, and concise responses about weather-related questions.

Guidelines:
- Be conversational and helpful
- Provide practical advice when appropriate
- Keep responses concise but informative
- If asked about clothing recommendations, consider the weather conditions
- If asked about activities, suggest weather-appropriate options`

var cachedSystemPrompt *SystemPromptConfig

// LoadSystemPrompt はYAMLファイルからシステムプロンプト設定を読み込む
func LoadSystemPrompt() (*SystemPromptConfig, error) {
	if cachedSystemPrompt != nil {
		return cachedSystemPrompt, nil
	}

	data, err := os.ReadFile("configs/system_prompt.yaml")
	if err != nil {
		return nil, fmt.Errorf("システムプロンプト設定ファイルの読み込みに失敗: %w", err)
	}

	var config SystemPromptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}

	cachedSystemPrompt = &config
	return cachedSystemPrompt, nil
}

// BuildSystemPrompt は設定からアシスタントのシステムプロンプトを構築
func (c *SystemPromptConfig) BuildSystemPrompt() string {
	var sb strings.Builder

	// 役割の定義
	sb.WriteString(fmt.Sprintf("You are a %s. Provide accurate, friendly, and concise responses about weather-related questions.\n", c.System.Role))

	// 回答方針
	if len(c.Guidelines) > 0 {
		sb.WriteString("\nGuidelines:\n")
		for _, guideline := range c.Guidelines {
			sb.WriteString(fmt.Sprintf("- %s\n", guideline))
		}
	}

	// 制約事項
	if len(c.Constraints) > 0 {
		sb.WriteString("\nConstraints:\n")
		for _, constraint := range c.Constraints {
			sb.WriteString(fmt.Sprintf("- %s\n", constraint))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// SystemPrompt はYAML設定があればそれを、なければ組み込みプロンプトを返す
func SystemPrompt() string {
	cfg, err := LoadSystemPrompt()
	if err != nil {
		return defaultSystemPrompt
	}
	return cfg.BuildSystemPrompt()
}
