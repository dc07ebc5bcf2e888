package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"skycast-api/internal/services"

	"github.com/gin-gonic/gin"
)

// WeatherHandler 天気データハンドラー
type WeatherHandler struct {
	weatherService *services.WeatherService
}

// NewWeatherHandler 新しい天気データハンドラーを作成
func NewWeatherHandler(weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

// GetCurrentWeather 指定座標の現在天気と5日間予報を取得するハンドラー
func (wh *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Latitude and longitude are required",
		})
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Latitude and longitude must be numeric",
		})
		return
	}

	weatherData, err := wh.weatherService.FetchCurrent(c.Request.Context(), lat, lon)
	if err != nil {
		// プロバイダのエラー詳細はログにのみ残し、クライアントには返さない
		log.Printf("天気データの取得に失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch weather data",
		})
		return
	}

	c.JSON(http.StatusOK, weatherData)
}

// SearchLocations 地名クエリから候補地を検索するハンドラー
func (wh *WeatherHandler) SearchLocations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query is required",
		})
		return
	}

	candidates, err := wh.weatherService.Search(c.Request.Context(), query)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
			return
		}

		log.Printf("地名検索に失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search locations",
		})
		return
	}

	c.JSON(http.StatusOK, candidates)
}
