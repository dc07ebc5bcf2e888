package store

import (
	"sync"

	"skycast-api/internal/models"
)

// MemoryLocationStore ダッシュボードにピン留めされた地点のインメモリストア
type MemoryLocationStore struct {
	mu        sync.RWMutex
	locations map[int64]models.SavedLocation
	nextID    int64
}

// NewMemoryLocationStore 新しい地点ストアを作成
func NewMemoryLocationStore() *MemoryLocationStore {
	return &MemoryLocationStore{
		locations: make(map[int64]models.SavedLocation),
		nextID:    1,
	}
}

// Create は地点を1件保存し、IDを付与して返します。
func (s *MemoryLocationStore) Create(userID int, req models.SavedLocationRequest) models.SavedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := models.SavedLocation{
		ID:      s.nextID,
		UserID:  userID,
		Name:    req.Name,
		Country: req.Country,
		Lat:     req.Lat,
		Lon:     req.Lon,
	}
	s.nextID++
	s.locations[loc.ID] = loc
	return loc
}

// ListByUser は指定ユーザーの保存地点をID順で返します。
func (s *MemoryLocationStore) ListByUser(userID int) []models.SavedLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.SavedLocation, 0)
	for id := int64(1); id < s.nextID; id++ {
		if loc, ok := s.locations[id]; ok && loc.UserID == userID {
			result = append(result, loc)
		}
	}
	return result
}
