package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skycast-api/internal/models"
	"skycast-api/internal/services"
	"skycast-api/internal/store"
	"skycast-api/pkg/openweather"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSystemPrompt = "You are a helpful weather assistant AI."

// newOpenWeatherStub はOpenWeatherMapを模したテストサーバーを作成
func newOpenWeatherStub() *httptest.Server {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"coord": {"lat": 35.69, "lon": 139.69},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"main": {"temp": 20.0, "humidity": 50},
			"wind": {"speed": 2.0},
			"visibility": 10000,
			"sys": {"country": "JP"},
			"name": "Tokyo"
		}`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"city": map[string]string{"name": "Tokyo"},
			"list": []map[string]interface{}{
				{
					"dt":      now.Unix(),
					"main":    map[string]interface{}{"temp_min": 12.0, "temp_max": 18.0, "humidity": 55},
					"weather": []map[string]string{{"main": "Clear", "description": "clear sky", "icon": "01d"}},
					"wind":    map[string]float64{"speed": 3.0},
				},
			},
		})
	})
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name": "Tokyo", "country": "JP", "lat": 35.69, "lon": 139.69}]`))
	})
	return httptest.NewServer(mux)
}

// newWeatherRouter は天気エンドポイントだけを持つテスト用ルーターを作成
func newWeatherRouter(providerURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	weatherService := services.NewWeatherService(openweather.NewClient(providerURL, "test-key"))
	weatherHandler := NewWeatherHandler(weatherService)

	router := gin.New()
	weather := router.Group("/api/weather")
	{
		weather.GET("/current", weatherHandler.GetCurrentWeather)
		weather.GET("/search", weatherHandler.SearchLocations)
	}
	return router
}

func TestHealthCheck(t *testing.T) {
	// Ginのテストモードに設定
	gin.SetMode(gin.TestMode)

	// ルーターを作成
	router := gin.New()
	router.GET("/health", HealthCheck)

	// テストリクエストを作成
	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	// リクエストを実行
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// ステータスコードとレスポンス内容を確認
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "Skycast API")
}

func TestGetCurrentWeather(t *testing.T) {
	provider := newOpenWeatherStub()
	defer provider.Close()

	router := newWeatherRouter(provider.URL)

	req, _ := http.NewRequest("GET", "/api/weather/current?lat=35.69&lon=139.69", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var data models.WeatherData
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Equal(t, "Tokyo", data.Location.Name)
	assert.Equal(t, 20, data.Current.Temperature)
	assert.Len(t, data.Forecast, 1)
}

func TestGetCurrentWeatherMissingParams(t *testing.T) {
	router := newWeatherRouter("http://127.0.0.1:0")

	// lat/lonなし
	req, _ := http.NewRequest("GET", "/api/weather/current", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// lonのみ欠落
	req, _ = http.NewRequest("GET", "/api/weather/current?lat=35.69", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 数値でない座標
	req, _ = http.NewRequest("GET", "/api/weather/current?lat=abc&lon=139.69", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCurrentWeatherUpstreamFailure(t *testing.T) {
	// プロバイダが落ちている場合は500と汎用メッセージ
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"cod": "503", "message": "service down"}`))
	}))
	defer provider.Close()

	router := newWeatherRouter(provider.URL)

	req, _ := http.NewRequest("GET", "/api/weather/current?lat=35.69&lon=139.69", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch weather data")
	// プロバイダのエラー詳細はクライアントに露出しない
	assert.NotContains(t, w.Body.String(), "service down")
}

func TestSearchLocations(t *testing.T) {
	provider := newOpenWeatherStub()
	defer provider.Close()

	router := newWeatherRouter(provider.URL)

	req, _ := http.NewRequest("GET", "/api/weather/search?q=Tokyo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var candidates []models.LocationCandidate
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidates))
	assert.Len(t, candidates, 1)
	assert.Equal(t, "JP", candidates[0].Country)
}

func TestSearchLocationsMissingQuery(t *testing.T) {
	router := newWeatherRouter("http://127.0.0.1:0")

	req, _ := http.NewRequest("GET", "/api/weather/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Search query is required")
}

// newChatRouter はチャットエンドポイントを持つテスト用ルーターを作成
func newChatRouter(aiBaseURL string, chatStore store.ChatStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	chatService := services.NewChatService("test-key", aiBaseURL, "gpt-4o", testSystemPrompt, chatStore)
	chatHandler := NewChatHandler(chatService, chatStore)

	router := gin.New()
	chat := router.Group("/api/chat")
	{
		chat.POST("", chatHandler.PostChat)
		chat.GET("/history", chatHandler.GetChatHistory)
	}
	return router
}

func TestPostChat(t *testing.T) {
	// OpenAI互換のテストサーバー
	ai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Take a light jacket."},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer ai.Close()

	chatStore := store.NewMemoryChatStore()
	router := newChatRouter(ai.URL, chatStore)

	body, _ := json.Marshal(models.ChatRequest{Message: "What should I wear?"})
	req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Take a light jacket.")

	// ユーザー発言とAI返信が履歴に追記されている
	assert.Len(t, chatStore.Recent(1, 10), 2)
}

func TestPostChatMissingMessage(t *testing.T) {
	chatStore := store.NewMemoryChatStore()
	router := newChatRouter("http://127.0.0.1:0", chatStore)

	// messageフィールドなし
	req, _ := http.NewRequest("POST", "/api/chat", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 空白のみのメッセージもサービス側の検証で拒否される
	req, _ = http.NewRequest("POST", "/api/chat", bytes.NewReader([]byte(`{"message": "   "}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 拒否されたリクエストは履歴に何も残さない
	assert.Empty(t, chatStore.Recent(1, 10))
}

func TestGetChatHistory(t *testing.T) {
	chatStore := store.NewMemoryChatStore()
	chatStore.Append(1, "hello", false)
	chatStore.Append(1, "Hello! How can I help?", true)

	router := newChatRouter("http://127.0.0.1:0", chatStore)

	req, _ := http.NewRequest("GET", "/api/chat/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var history []models.ChatMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Message)
	assert.True(t, history[1].IsAI)
}

func TestLocationEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	locationHandler := NewLocationHandler(store.NewMemoryLocationStore())

	router := gin.New()
	locations := router.Group("/api/locations")
	{
		locations.GET("", locationHandler.ListLocations)
		locations.POST("", locationHandler.CreateLocation)
	}

	// 地点を保存
	body, _ := json.Marshal(models.SavedLocationRequest{Name: "Tokyo", Country: "JP", Lat: 35.69, Lon: 139.69})
	req, _ := http.NewRequest("POST", "/api/locations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// 必須フィールド欠落は400
	req, _ = http.NewRequest("POST", "/api/locations", bytes.NewReader([]byte(`{"name": "Tokyo"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 一覧を取得
	req, _ = http.NewRequest("GET", "/api/locations", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var saved []models.SavedLocation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Len(t, saved, 1)
	assert.Equal(t, "Tokyo", saved[0].Name)
}

func TestMonitoringLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	monitoringService := services.NewMonitoringService()
	monitoringHandler := NewMonitoringHandler(monitoringService)

	router := gin.New()
	router.Use(monitoringService.LoggingMiddleware())
	router.GET("/health", HealthCheck)
	router.GET("/api/monitoring/logs", monitoringHandler.GetLogs)

	// 記録対象のリクエストを1件実行
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 集計結果に反映されている
	req, _ = http.NewRequest("GET", "/api/monitoring/logs?period=1h", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var summary services.RequestSummary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalRequests)
	assert.Equal(t, 1, summary.Endpoints["/health"])
}
