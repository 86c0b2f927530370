package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/canakboyraz/sport-buddy-app-sub000/internal/config"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherService interroge l'API OpenWeather (météo courante + prévisions 5 jours)
type WeatherService struct {
	apiKey string
	client *http.Client
}

func NewWeatherService(cfg *config.Config) (*WeatherService, error) {
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("openweather configuration is missing")
	}

	return &WeatherService{
		apiKey: cfg.OpenWeatherAPIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CurrentWeather météo courante pour des coordonnées données
type CurrentWeather struct {
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ForecastEntry une tranche de 3h des prévisions
type ForecastEntry struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
}

type owWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owForecastResponse struct {
	List []struct {
		Dt      int64 `json:"dt"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// GetCurrentWeather récupère la météo courante par coordonnées
func (s *WeatherService) GetCurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	var parsed owWeatherResponse
	if err := s.get(ctx, "/weather", lat, lon, &parsed); err != nil {
		return nil, err
	}

	weather := &CurrentWeather{
		Temperature: parsed.Main.Temp,
		FeelsLike:   parsed.Main.FeelsLike,
		Humidity:    parsed.Main.Humidity,
		WindSpeed:   parsed.Wind.Speed,
	}
	if len(parsed.Weather) > 0 {
		weather.Description = parsed.Weather[0].Description
		weather.Icon = parsed.Weather[0].Icon
	}

	return weather, nil
}

// GetForecast récupère les prévisions 5 jours (tranches de 3h)
func (s *WeatherService) GetForecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	var parsed owForecastResponse
	if err := s.get(ctx, "/forecast", lat, lon, &parsed); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(parsed.List))
	for _, item := range parsed.List {
		entry := ForecastEntry{
			Time:        time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *WeatherService) get(ctx context.Context, path string, lat, lon float64, dest interface{}) error {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("units", "metric")
	params.Set("lang", "tr")
	params.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeatherBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openweather returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
