package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"farmstead/pkg/apierror"
)

// WeatherService proxies the OpenWeatherMap API. Responses are passed
// through unmodified so the clients keep their provider-shaped payloads.
type WeatherService struct {
	baseURL     string
	apiKey      string
	defaultCity string
	client      *http.Client
}

func NewWeatherService(baseURL string, apiKey string, defaultCity string) *WeatherService {
	return &WeatherService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		defaultCity: defaultCity,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WeatherService) Current(ctx context.Context, city string) (json.RawMessage, error) {
	return s.fetch(ctx, "/weather", city, "Failed to fetch current weather data")
}

func (s *WeatherService) Forecast(ctx context.Context, city string) (json.RawMessage, error) {
	return s.fetch(ctx, "/forecast", city, "Failed to fetch weather forecast data")
}

// forecastEnvelope is the slice of the provider payload the alert sweep
// inspects.
type forecastEnvelope struct {
	List []struct {
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// SevereWeatherExpected reports whether rain or a storm shows up in the next
// 24 hours of the default city's forecast (eight 3-hour intervals), and the
// condition found.
func (s *WeatherService) SevereWeatherExpected(ctx context.Context) (bool, string, error) {
	raw, err := s.Forecast(ctx, s.defaultCity)
	if err != nil {
		return false, "", err
	}

	var forecast forecastEnvelope
	if err := json.Unmarshal(raw, &forecast); err != nil {
		return false, "", fmt.Errorf("decode forecast: %w", err)
	}

	intervals := forecast.List
	if len(intervals) > 8 {
		intervals = intervals[:8]
	}
	for _, interval := range intervals {
		for _, w := range interval.Weather {
			main := strings.ToLower(w.Main)
			if strings.Contains(main, "rain") || strings.Contains(main, "storm") || strings.Contains(main, "thunder") {
				return true, w.Main, nil
			}
		}
	}
	return false, "", nil
}

func (s *WeatherService) fetch(ctx context.Context, path string, city string, failureMessage string) (json.RawMessage, error) {
	if strings.TrimSpace(city) == "" {
		city = s.defaultCity
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", s.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apierror.New("WEATHER_UNAVAILABLE", failureMessage, err.Error(), http.StatusInternalServerError)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apierror.New("WEATHER_UNAVAILABLE", failureMessage, err.Error(), http.StatusInternalServerError)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierror.New("WEATHER_UNAVAILABLE", failureMessage,
			fmt.Sprintf("provider returned %d", resp.StatusCode), http.StatusInternalServerError)
	}

	return json.RawMessage(body), nil
}
