//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFinanceAnalytics(t *testing.T) {
	server := newTestServer(t)
	token, _ := signup(t, server)

	payload, err := json.Marshal(map[string]any{
		"type":        "income",
		"category":    "Harvest Sale",
		"batch":       "batch-a",
		"units":       10,
		"costPerUnit": 5,
		"recordDate":  time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)

	createResp := doJSON(t, http.MethodPost, server.URL+"/api/transactions", payload, token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	t.Run("summary", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/finance-analytics/summary", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary struct {
			Income           float64 `json:"income"`
			Expenses         float64 `json:"expenses"`
			Profit           float64 `json:"profit"`
			TransactionCount int     `json:"transactionCount"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
		require.GreaterOrEqual(t, summary.Income, 50.0)
		require.GreaterOrEqual(t, summary.TransactionCount, 1)
		require.Equal(t, summary.Income-summary.Expenses, summary.Profit)
	})

	t.Run("monthly trends has twelve entries", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/finance-analytics/monthly-trends", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Year   int              `json:"year"`
			Trends []map[string]any `json:"trends"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, time.Now().Year(), body.Year)
		require.Len(t, body.Trends, 12)
	})

	t.Run("categories", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/finance-analytics/categories?type=income", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []struct {
			Category string  `json:"category"`
			Total    float64 `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
		require.NotEmpty(t, categories)
	})

	t.Run("batch analytics", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/finance-analytics/batch-analytics", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/finance-analytics/categories?type=transfer", nil, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("dashboard rollup", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/analytics", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var dashboard struct {
			Stats struct {
				TotalRevenue float64 `json:"totalRevenue"`
			} `json:"stats"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
		require.GreaterOrEqual(t, dashboard.Stats.TotalRevenue, 50.0)
	})
}
