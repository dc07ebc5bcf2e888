package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"skycast-api/internal/models"
	"skycast-api/internal/store"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// chatMaxTokens / chatTemperature は固定設定（ユーザーからは変更不可）
	chatMaxTokens   = 200
	chatTemperature = 0.7
	chatTimeout     = 30 * time.Second
)

// ChatService ユーザーメッセージをAIまたはオフライン応答器で解決するサービス
type ChatService struct {
	client       openai.Client
	model        string
	systemPrompt string
	responder    *OfflineResponder
	chatStore    store.ChatStore
}

// NewChatService 新しいチャットサービスを作成
func NewChatService(apiKey, baseURL, model, systemPrompt string, chatStore store.ChatStore) *ChatService {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: chatTimeout}),
	)

	return &ChatService{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
		responder:    NewOfflineResponder(),
		chatStore:    chatStore,
	}
}

// Resolve はメッセージを検証し、AI補完またはオフライン応答で返信を生成します。
// ユーザーメッセージと返信はその順で履歴に追記されます。
// プロバイダ障害はここで吸収されるため、空でない入力に対して失敗することはありません。
func (cs *ChatService) Resolve(ctx context.Context, userID int, message string, weather *models.WeatherData) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &ValidationError{Reason: "message is required"}
	}

	cs.chatStore.Append(userID, message, false)

	reply, err := cs.complete(ctx, message, weather)
	if err != nil {
		// プロバイダ障害はログに残してオフライン応答に切り替える
		log.Printf("AIプロバイダが利用できないためオフラインモードで応答します: %v", err)
		reply = cs.responder.Respond(message, weather)
	}

	cs.chatStore.Append(userID, reply, true)
	return reply, nil
}

// complete はホストされたモデルでチャット補完を実行します。
func (cs *ChatService) complete(ctx context.Context, message string, weather *models.WeatherData) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cs.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(cs.buildSystemPrompt(weather)),
			openai.UserMessage(message),
		},
		MaxTokens:   openai.Int(chatMaxTokens),
		Temperature: openai.Float(chatTemperature),
	}

	resp, err := cs.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("チャット補完の呼び出しに失敗: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("チャット補完の応答が空です")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "I'm sorry, I couldn't process your request.", nil
	}
	return content, nil
}

// buildSystemPrompt は固定のシステムプロンプトに天気コンテキストを埋め込みます。
func (cs *ChatService) buildSystemPrompt(weather *models.WeatherData) string {
	if weather == nil {
		return cs.systemPrompt
	}

	var sb strings.Builder
	sb.WriteString(cs.systemPrompt)
	sb.WriteString("\n\nCurrent weather context:\n")
	sb.WriteString(fmt.Sprintf("Location: %s, %s\n", weather.Location.Name, weather.Location.Country))
	sb.WriteString(fmt.Sprintf("Temperature: %d°C\n", weather.Current.Temperature))
	sb.WriteString(fmt.Sprintf("Condition: %s\n", weather.Current.Condition))
	sb.WriteString(fmt.Sprintf("Description: %s\n", weather.Current.Description))
	sb.WriteString(fmt.Sprintf("Humidity: %d%%\n", weather.Current.Humidity))
	sb.WriteString(fmt.Sprintf("Wind Speed: %d km/h", weather.Current.WindSpeed))
	return sb.String()
}
