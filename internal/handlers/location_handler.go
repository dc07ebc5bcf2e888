package handlers

import (
	"net/http"

	"skycast-api/internal/models"
	"skycast-api/internal/store"

	"github.com/gin-gonic/gin"
)

// LocationHandler 保存地点ハンドラー
type LocationHandler struct {
	locationStore *store.MemoryLocationStore
}

// NewLocationHandler 新しい保存地点ハンドラーを作成
func NewLocationHandler(locationStore *store.MemoryLocationStore) *LocationHandler {
	return &LocationHandler{
		locationStore: locationStore,
	}
}

// ListLocations ユーザーの保存地点一覧を返すハンドラー
func (lh *LocationHandler) ListLocations(c *gin.Context) {
	locations := lh.locationStore.ListByUser(demoUserID)
	c.JSON(http.StatusOK, locations)
}

// CreateLocation 地点を保存するハンドラー
func (lh *LocationHandler) CreateLocation(c *gin.Context) {
	var req models.SavedLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Name and country are required",
		})
		return
	}

	location := lh.locationStore.Create(demoUserID, req)
	c.JSON(http.StatusCreated, location)
}
