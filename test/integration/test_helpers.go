//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"farmstead/internal/database"
	"farmstead/internal/handler"
	"farmstead/internal/middleware"
	"farmstead/internal/repository"
	"farmstead/internal/router"
	"farmstead/internal/service"
)

// newTestServer stands up the full HTTP surface against the database named
// by TEST_DATABASE_URL. Tests are skipped when no database is available.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, database.Options{URL: databaseURL, MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	authService := service.NewAuthService(userRepo, "integration-secret", 24*time.Hour, 30*time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(
		notificationRepo, alertRepo, userRepo, nil, 5, 72*time.Hour,
	)
	analyticsService := service.NewAnalyticsService(financeRepo, reportRepo)

	appRouter := router.New(router.Deps{
		Auth:                authMiddleware,
		RateLimit:           middleware.NewRateLimitMiddleware(10000, 10000),
		CORS:                middleware.CORS([]string{"*"}),
		AuthHandler:         handler.NewAuthHandler(authService),
		UserHandler:         handler.NewUserHandler(userService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		WeatherHandler:      handler.NewWeatherHandler(service.NewWeatherService("http://127.0.0.1:0", "none", "Kathmandu")),
		AnalyticsHandler:    handler.NewAnalyticsHandler(analyticsService),
		Crops:               handler.NewResourceHandler(repository.NewCropRecords(pool)),
		Batches:             handler.NewResourceHandler(repository.NewBatchRecords(pool)),
		LivestockRecords:    handler.NewResourceHandler(repository.NewLivestockRecords(pool)),
		MedicalRecords:      handler.NewResourceHandler(repository.NewMedicalRecords(pool)),
		LivestockMedical:    handler.NewResourceHandler(repository.NewLivestockMedicalRecords(pool)),
		HarvestingRecords:   handler.NewResourceHandler(repository.NewHarvestingRecords(pool)),
		BreedingRecords:     handler.NewResourceHandler(repository.NewBreedingRecords(pool)),
		Transactions:        handler.NewResourceHandler(repository.NewTransactionRecords(pool)),
		InventoryItems:      handler.NewResourceHandler(repository.NewInventoryRecords(pool)),
		PestEntries:         handler.NewResourceHandler(repository.NewPestEntries(pool)),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

// signup registers a unique throwaway account and returns its token.
func signup(t *testing.T, server *httptest.Server) (string, string) {
	t.Helper()

	email := "it-" + uuid.NewString() + "@example.com"
	payload, err := json.Marshal(map[string]string{
		"name":     "Integration",
		"email":    email,
		"password": "secret123",
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/auth/signup", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)
	require.Equal(t, email, parsed.User.Email)

	return parsed.Token, email
}

func doJSON(t *testing.T, method string, url string, body []byte, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
