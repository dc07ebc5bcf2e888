package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// RequestSummary は指定期間のリクエストログを集計したものです。
type RequestSummary struct {
	TotalRequests int            `json:"totalRequests"`
	Endpoints     map[string]int `json:"endpoints"`
	StatusCodes   map[string]int `json:"statusCodes"`
	RecentErrors  []LogEntry     `json:"recentErrors"`
}

// MonitoringService はAPIのリクエストログを記録・集計します。
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 次のミドルウェア/ハンドラを実行
		c.Next()

		// モニタリングAPI自身は記録しない
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// GetRequestSummary は指定された期間のログを集計して返します。
func (s *MonitoringService) GetRequestSummary(period time.Duration) RequestSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := time.Now().Add(-period)

	summary := RequestSummary{
		Endpoints:    make(map[string]int),
		StatusCodes:  make(map[string]int),
		RecentErrors: make([]LogEntry, 0),
	}

	filtered := make([]LogEntry, 0, len(s.logs))
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	summary.TotalRequests = len(filtered)
	for _, entry := range filtered {
		summary.Endpoints[entry.Path]++

		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			summary.StatusCodes["2xx"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			summary.StatusCodes["4xx"]++
		case entry.StatusCode >= 500:
			summary.StatusCodes["5xx"]++
		}
	}

	// 直近のサーバーエラーを新しい順に最大10件
	for i := len(filtered) - 1; i >= 0 && len(summary.RecentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			summary.RecentErrors = append(summary.RecentErrors, filtered[i])
		}
	}

	return summary
}
