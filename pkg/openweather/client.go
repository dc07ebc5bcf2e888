package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client はOpenWeatherMap REST APIへのリクエストを管理します。
// baseURLには本番のOpenWeatherMapエンドポイント、またはテスト用のサーバーURLを設定します。
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient は新しいOpenWeatherMapクライアントを作成します。
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// --- データ構造定義 ---

// CurrentWeatherResponse 現在天気APIレスポンス
type CurrentWeatherResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
	Visibility int `json:"visibility"` // meters
	Sys        struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// ForecastItem 3時間ごとの予報サンプル
type ForecastItem struct {
	Dt   int64 `json:"dt"` // Unix timestamp
	Main struct {
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

// ForecastResponse 5日間予報APIレスポンス（3時間間隔）
type ForecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []ForecastItem `json:"list"`
}

// GeocodeResult ジオコーディングAPIの1件の候補
type GeocodeResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// APIError OpenWeatherMapが2xx以外を返した場合のエラー
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("OpenWeatherMap API エラー (status: %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("OpenWeatherMap API エラー (status: %d)", e.StatusCode)
}

// --- メソッド定義 ---

// CurrentWeather は指定座標の現在の天気を取得します。
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeatherResponse, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", "metric")

	var response CurrentWeatherResponse
	if err := c.doGet(ctx, "/data/2.5/weather", params, &response); err != nil {
		return nil, err
	}
	if len(response.Weather) == 0 {
		return nil, fmt.Errorf("現在天気レスポンスにweatherフィールドがありません")
	}
	return &response, nil
}

// Forecast は指定座標の5日間予報（3時間間隔）を取得します。
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", "metric")

	var response ForecastResponse
	if err := c.doGet(ctx, "/data/2.5/forecast", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GeocodeDirect は地名クエリから候補地を検索します。
func (c *Client) GeocodeDirect(ctx context.Context, query string, limit int) ([]GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []GeocodeResult
	if err := c.doGet(ctx, "/geo/1.0/direct", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// doGet はHTTP GETリクエストの実行と基本的なレスポンス処理を行う共通メソッドです。
func (c *Client) doGet(ctx context.Context, path string, params url.Values, responseData interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("API key が設定されていません")
	}
	params.Set("appid", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの実行に失敗: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンスの読み取りに失敗: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// OpenWeatherMapは {"cod": "...", "message": "..."} 形式でエラーを返す
		var errorResp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errorResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errorResp.Message}
	}

	if err := json.Unmarshal(body, responseData); err != nil {
		return fmt.Errorf("レスポンスのJSON解析に失敗: %w", err)
	}

	return nil
}
