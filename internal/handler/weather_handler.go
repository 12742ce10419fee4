package handler

import (
	"net/http"

	"farmstead/internal/service"
)

// WeatherHandler proxies the weather provider; payloads pass through as-is.
type WeatherHandler struct {
	weather *service.WeatherService
}

func NewWeatherHandler(weather *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	raw, err := h.weather.Current(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *WeatherHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	raw, err := h.weather.Forecast(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
