package services

import (
	"fmt"
	"strings"

	"skycast-api/internal/models"
)

// genericOfflineMessage どのルールにも一致しなかった場合の応答
const genericOfflineMessage = "I'm currently running in offline mode. I can help with basic weather questions about temperature, rain, wind, and clothing recommendations when weather data is available. Please ask me about current weather conditions!"

// offlineRule キーワード群と応答テンプレートのペア。
// ルールは優先順に固定の並びで評価されます。
type offlineRule struct {
	keywords []string
	respond  func(weather *models.WeatherData) string
}

// OfflineResponder AIプロバイダが利用できない場合の決定的なルールベース応答器。
// どんな入力に対しても必ず何らかの文字列を返し、失敗しません。
type OfflineResponder struct {
	rules []offlineRule
}

// NewOfflineResponder 新しいオフライン応答器を作成
func NewOfflineResponder() *OfflineResponder {
	return &OfflineResponder{
		rules: []offlineRule{
			{keywords: []string{"temperature", "hot", "cold"}, respond: respondTemperature},
			{keywords: []string{"rain", "umbrella"}, respond: respondRain},
			{keywords: []string{"wind", "windy"}, respond: respondWind},
			{keywords: []string{"clothes", "wear", "dress"}, respond: respondClothing},
			{keywords: []string{"forecast", "tomorrow", "week"}, respond: respondForecast},
			{keywords: []string{"hello", "hi"}, respond: respondGreeting},
		},
	}
}

// Respond はメッセージを小文字化してルールを優先順に照合し、応答文を返します。
func (r *OfflineResponder) Respond(message string, weather *models.WeatherData) string {
	lower := strings.ToLower(message)

	for _, rule := range r.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.respond(weather)
			}
		}
	}
	return genericOfflineMessage
}

func respondTemperature(weather *models.WeatherData) string {
	if weather == nil {
		return "I can provide temperature-specific advice when weather data is available."
	}
	temp := weather.Current.Temperature
	switch {
	case temp > 25:
		return fmt.Sprintf("It's quite warm at %d°C! Consider wearing light, breathable clothing and staying hydrated.", temp)
	case temp < 10:
		return fmt.Sprintf("It's cold at %d°C. Make sure to dress warmly with layers, a jacket, and consider a hat and gloves.", temp)
	default:
		return fmt.Sprintf("The temperature is %d°C, which is comfortable. Light layers should work well.", temp)
	}
}

func respondRain(weather *models.WeatherData) string {
	if weather != nil && strings.Contains(strings.ToLower(weather.Current.Condition), "rain") {
		return "It's raining! Don't forget to bring an umbrella or wear a waterproof jacket."
	}
	return "No rain is currently forecasted, but it's always good to check the forecast before heading out."
}

func respondWind(weather *models.WeatherData) string {
	if weather == nil {
		return "I can provide wind-specific information when weather data is available."
	}
	wind := weather.Current.WindSpeed
	if wind > 20 {
		return fmt.Sprintf("It's quite windy at %d km/h. Secure loose items and be cautious if you're cycling or driving.", wind)
	}
	return fmt.Sprintf("Wind speed is %d km/h, which is quite manageable.", wind)
}

func respondClothing(weather *models.WeatherData) string {
	if weather == nil {
		return "I can provide clothing recommendations based on current weather conditions."
	}

	temp := weather.Current.Temperature
	condition := strings.ToLower(weather.Current.Condition)

	var suggestion string
	switch {
	case temp > 25:
		suggestion = "Light, breathable clothing like cotton t-shirts and shorts"
	case temp > 15:
		suggestion = "Comfortable clothing with a light jacket or sweater"
	case temp > 5:
		suggestion = "Warm layers, a jacket, and long pants"
	default:
		suggestion = "Heavy winter clothing, coat, hat, and gloves"
	}

	if strings.Contains(condition, "rain") {
		suggestion += ", and don't forget a waterproof jacket or umbrella"
	}

	return fmt.Sprintf("Based on %d°C and %s: %s.", temp, weather.Current.Condition, suggestion)
}

func respondForecast(weather *models.WeatherData) string {
	return "Check the 5-day forecast displayed on the main screen for upcoming weather conditions."
}

func respondGreeting(weather *models.WeatherData) string {
	return "Hello! I'm your weather assistant. I can help you with weather information and advice about what to wear or do based on current conditions."
}
