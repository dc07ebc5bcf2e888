package main

import (
	"log"

	config "skycast-api/configs"
	"skycast-api/internal/handlers"
	"skycast-api/internal/services"
	"skycast-api/internal/store"
	"skycast-api/pkg/openweather"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// ストアの初期化
	chatStore := store.NewMemoryChatStore()
	locationStore := store.NewMemoryLocationStore()

	// サービスの初期化
	monitoringService := services.NewMonitoringService()
	weatherService := services.NewWeatherService(
		openweather.NewClient(cfg.OpenWeatherMapBaseURL, cfg.OpenWeatherMapAPIKey),
	)
	chatService := services.NewChatService(
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		cfg.OpenAIModel,
		config.SystemPrompt(),
		chatStore,
	)

	// ハンドラーの初期化
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	chatHandler := handlers.NewChatHandler(chatService, chatStore)
	locationHandler := handlers.NewLocationHandler(locationStore)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIルートグループ
	api := r.Group("/api")
	{
		// 気象データAPI
		weather := api.Group("/weather")
		{
			weather.GET("/current", weatherHandler.GetCurrentWeather)
			weather.GET("/search", weatherHandler.SearchLocations)
		}

		// チャットAPI
		chat := api.Group("/chat")
		{
			chat.POST("", chatHandler.PostChat)
			chat.GET("/history", chatHandler.GetChatHistory)
		}

		// 保存地点API
		locations := api.Group("/locations")
		{
			locations.GET("", locationHandler.ListLocations)
			locations.POST("", locationHandler.CreateLocation)
		}

		// モニタリングAPI
		monitoring := api.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Println("Starting Skycast API server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
