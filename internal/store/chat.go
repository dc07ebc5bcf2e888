package store

import (
	"sort"
	"sync"
	"time"

	"skycast-api/internal/models"
)

// ChatStore チャット履歴の保存先
type ChatStore interface {
	Append(userID int, message string, isAI bool) models.ChatMessage
	Recent(userID, limit int) []models.ChatMessage
}

// MemoryChatStore 追記専用のインメモリチャット履歴ストア。
// 単一のロックで保護されるため、各Appendは不可分に行われます。
// 削除・退避は行いません（履歴は増え続けます）。
type MemoryChatStore struct {
	mu       sync.RWMutex
	messages map[int64]models.ChatMessage
	nextID   int64
}

// NewMemoryChatStore 新しいインメモリチャット履歴ストアを作成
func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{
		messages: make(map[int64]models.ChatMessage),
		nextID:   1,
	}
}

// Append はメッセージを1件追記し、単調増加IDとタイムスタンプを付与して返します。
func (s *MemoryChatStore) Append(userID int, message string, isAI bool) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.ChatMessage{
		ID:        s.nextID,
		UserID:    userID,
		Message:   message,
		IsAI:      isAI,
		Timestamp: time.Now(),
	}
	s.nextID++
	s.messages[msg.ID] = msg
	return msg
}

// Recent は指定ユーザーの直近limit件を時系列順（古い順）で返します。
// マップは挿入順を保持しないため、新しい順にソートして切り詰めてから反転します。
func (s *MemoryChatStore) Recent(userID, limit int) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userMessages := make([]models.ChatMessage, 0, limit)
	for _, msg := range s.messages {
		if msg.UserID == userID {
			userMessages = append(userMessages, msg)
		}
	}

	sort.Slice(userMessages, func(i, j int) bool {
		if userMessages[i].Timestamp.Equal(userMessages[j].Timestamp) {
			return userMessages[i].ID > userMessages[j].ID
		}
		return userMessages[i].Timestamp.After(userMessages[j].Timestamp)
	})

	if limit > 0 && len(userMessages) > limit {
		userMessages = userMessages[:limit]
	}

	// 古い順に反転
	for i, j := 0, len(userMessages)-1; i < j; i, j = i+1, j-1 {
		userMessages[i], userMessages[j] = userMessages[j], userMessages[i]
	}
	return userMessages
}
