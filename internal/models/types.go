package models

import "time"

// Location identifies the place a weather report belongs to
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentConditions represents the current weather at a location.
// Temperatures are °C, wind speed km/h, visibility km. UVIndex is always 0
// because the provider's free tier does not supply it.
type CurrentConditions struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Visibility  int    `json:"visibility"`
	UVIndex     int    `json:"uvIndex"`
}

// DailyForecast is a single day of the 5-day forecast
type DailyForecast struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
}

// Alert represents a weather alert. Severity is one of
// "minor", "moderate", "severe", "extreme".
type Alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// WeatherData is the canonical, provider-independent weather model
type WeatherData struct {
	Location Location          `json:"location"`
	Current  CurrentConditions `json:"current"`
	Forecast []DailyForecast   `json:"forecast"`
	Alerts   []Alert           `json:"alerts,omitempty"`
}

// LocationCandidate is a geocoding match for a free-text place query
type LocationCandidate struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ChatMessage is a single stored chat turn (user or assistant)
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"userId"`
	Message   string    `json:"message"`
	IsAI      bool      `json:"isAI"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message        string       `json:"message" binding:"required"`
	WeatherContext *WeatherData `json:"weatherContext,omitempty"`
}

// ChatResponse represents the response from the chat API
type ChatResponse struct {
	Response string `json:"response"`
}

// SavedLocation is a location a user pinned on the dashboard
type SavedLocation struct {
	ID      int64   `json:"id"`
	UserID  int     `json:"userId"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// SavedLocationRequest represents a request to pin a location
type SavedLocationRequest struct {
	Name    string  `json:"name" binding:"required"`
	Country string  `json:"country" binding:"required"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
