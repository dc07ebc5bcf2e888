package services

import (
	"math"
	"time"

	"skycast-api/internal/models"
)

// maxForecastDays 日次予報の最大件数
const maxForecastDays = 5

// ForecastSample 正規化前の予報サンプル（3時間間隔のフィード1件分）
type ForecastSample struct {
	Timestamp   int64 // Unix timestamp
	TempMin     float64
	TempMax     float64
	Condition   string
	Description string
	Icon        string
	Humidity    int
	WindSpeedMS float64 // m/s
}

// NormalizeForecast は3時間間隔の予報フィードを日次予報（最大5日分）に集約します。
// 暦日ごとに最初に現れたサンプルを採用し、5日分集まった時点で残りは読み捨てます。
// フィードが空の場合は空のスライスを返します（エラーにはしません）。
func NormalizeForecast(samples []ForecastSample, loc *time.Location) []models.DailyForecast {
	if loc == nil {
		loc = time.Local
	}

	daily := make([]models.DailyForecast, 0, maxForecastDays)
	seenDays := make(map[string]bool)

	for _, sample := range samples {
		t := time.Unix(sample.Timestamp, 0).In(loc)
		dayKey := t.Format("2006-01-02")

		if seenDays[dayKey] {
			continue
		}
		seenDays[dayKey] = true

		daily = append(daily, models.DailyForecast{
			Date:        t.Format(time.RFC3339),
			Name:        dayName(len(daily), t),
			High:        int(math.Round(sample.TempMax)),
			Low:         int(math.Round(sample.TempMin)),
			Condition:   sample.Condition,
			Description: sample.Description,
			Icon:        sample.Icon,
			Humidity:    sample.Humidity,
			WindSpeed:   mpsToKmh(sample.WindSpeedMS),
		})

		if len(daily) >= maxForecastDays {
			break
		}
	}

	return daily
}

// dayName は採用順に Today / Tomorrow / 曜日名を割り当てます。
func dayName(index int, t time.Time) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return t.Weekday().String()
	}
}

// mpsToKmh 風速をm/sからkm/hに変換して四捨五入
func mpsToKmh(mps float64) int {
	return int(math.Round(mps * 3.6))
}
