package handlers

import (
	"errors"
	"log"
	"net/http"

	"skycast-api/internal/models"
	"skycast-api/internal/services"
	"skycast-api/internal/store"

	"github.com/gin-gonic/gin"
)

// demoUserID デモ用の固定ユーザーID（認証は導入していない）
const demoUserID = 1

// chatHistoryLimit 履歴APIで返す直近メッセージ数
const chatHistoryLimit = 20

// ChatHandler AIチャットハンドラー
type ChatHandler struct {
	chatService *services.ChatService
	chatStore   store.ChatStore
}

// NewChatHandler 新しいAIチャットハンドラーを作成
func NewChatHandler(chatService *services.ChatService, chatStore store.ChatStore) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		chatStore:   chatStore,
	}
}

// PostChat ユーザーメッセージを解決して返信を返すハンドラー
func (ch *ChatHandler) PostChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message is required",
		})
		return
	}

	reply, err := ch.chatService.Resolve(c.Request.Context(), demoUserID, req.Message, req.WeatherContext)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		log.Printf("チャット処理に失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process chat message",
		})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}

// GetChatHistory 直近のチャット履歴を時系列順で返すハンドラー
func (ch *ChatHandler) GetChatHistory(c *gin.Context) {
	messages := ch.chatStore.Recent(demoUserID, chatHistoryLimit)
	c.JSON(http.StatusOK, messages)
}
