package handler

import (
	"net/http"

	"farmstead/internal/service"
)

// AnalyticsHandler exposes the finance and crop reports plus the dashboard
// rollup. All endpoints are read-only.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := h.analytics.Summary(r.Context(), q.Get("timeFilter"), q.Get("year"), q.Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categories, err := h.analytics.Categories(r.Context(), q.Get("startDate"), q.Get("endDate"), q.Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (h *AnalyticsHandler) MonthlyTrends(w http.ResponseWriter, r *http.Request) {
	year, points, err := h.analytics.MonthlyTrends(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":   year,
		"trends": points,
	})
}

func (h *AnalyticsHandler) Batches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.analytics.Batches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, batches)
}

func (h *AnalyticsHandler) CropAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.CropAnalytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
