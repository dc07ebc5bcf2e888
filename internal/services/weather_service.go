package services

import (
	"context"
	"math"
	"strings"
	"time"

	"skycast-api/internal/models"
	"skycast-api/pkg/openweather"

	"golang.org/x/sync/errgroup"
)

// maxSearchResults 地名検索で返す候補の最大件数
const maxSearchResults = 5

// providerName エラーメッセージとログに使用するプロバイダ名
const providerName = "OpenWeatherMap"

// WeatherService 外部プロバイダから天気データを取得し正規化するサービス
type WeatherService struct {
	client *openweather.Client
}

// NewWeatherService 新しい天気データサービスを作成
func NewWeatherService(client *openweather.Client) *WeatherService {
	return &WeatherService{
		client: client,
	}
}

// FetchCurrent は現在天気と5日間予報を並行して取得し、正規化した天気モデルを返します。
// どちらか一方でも失敗した場合は全体を失敗として扱い、部分的なデータは返しません。
func (ws *WeatherService) FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherData, error) {
	var (
		current  *openweather.CurrentWeatherResponse
		forecast *openweather.ForecastResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := ws.client.CurrentWeather(gctx, lat, lon)
		if err != nil {
			return &UpstreamError{Provider: providerName, Err: err}
		}
		current = resp
		return nil
	})
	g.Go(func() error {
		resp, err := ws.client.Forecast(gctx, lat, lon)
		if err != nil {
			return &UpstreamError{Provider: providerName, Err: err}
		}
		forecast = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	samples := make([]ForecastSample, 0, len(forecast.List))
	for _, item := range forecast.List {
		sample := ForecastSample{
			Timestamp:   item.Dt,
			TempMin:     item.Main.TempMin,
			TempMax:     item.Main.TempMax,
			Humidity:    item.Main.Humidity,
			WindSpeedMS: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			sample.Condition = item.Weather[0].Main
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}

	return &models.WeatherData{
		Location: models.Location{
			Name:    current.Name,
			Country: current.Sys.Country,
			Lat:     current.Coord.Lat,
			Lon:     current.Coord.Lon,
		},
		Current: models.CurrentConditions{
			Temperature: int(math.Round(current.Main.Temp)),
			Condition:   current.Weather[0].Main,
			Description: current.Weather[0].Description,
			Icon:        current.Weather[0].Icon,
			Humidity:    current.Main.Humidity,
			WindSpeed:   mpsToKmh(current.Wind.Speed),
			Visibility:  int(math.Round(float64(current.Visibility) / 1000)),
			// 無料プランのAPIはUV指数を提供しないため常に0
			UVIndex: 0,
		},
		Forecast: NormalizeForecast(samples, time.Local),
	}, nil
}

// Search は地名クエリから候補地を検索します（最大5件）。
func (ws *WeatherService) Search(ctx context.Context, query string) ([]models.LocationCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Reason: "search query is required"}
	}

	results, err := ws.client.GeocodeDirect(ctx, query, maxSearchResults)
	if err != nil {
		return nil, &UpstreamError{Provider: providerName, Err: err}
	}

	candidates := make([]models.LocationCandidate, 0, len(results))
	for _, result := range results {
		candidates = append(candidates, models.LocationCandidate{
			Name:    result.Name,
			Country: result.Country,
			State:   result.State,
			Lat:     result.Lat,
			Lon:     result.Lon,
		})
	}
	return candidates, nil
}
