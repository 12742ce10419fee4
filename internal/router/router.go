package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"farmstead/internal/handler"
	"farmstead/internal/middleware"
	"farmstead/internal/model"
)

// Deps collects everything the route tree needs. The router stays a pure
// wiring layer: no business logic, no storage access.
type Deps struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	CORS      func(http.Handler) http.Handler

	AuthHandler          *handler.AuthHandler
	UserHandler          *handler.UserHandler
	NotificationHandler  *handler.NotificationHandler
	WeatherHandler       *handler.WeatherHandler
	AnalyticsHandler     *handler.AnalyticsHandler
	Crops                *handler.ResourceHandler[model.Crop]
	Batches              *handler.ResourceHandler[model.Batch]
	LivestockRecords     *handler.ResourceHandler[model.LivestockRecord]
	MedicalRecords       *handler.ResourceHandler[model.MedicalRecord]
	LivestockMedical     *handler.ResourceHandler[model.LivestockMedicalRecord]
	HarvestingRecords    *handler.ResourceHandler[model.HarvestingRecord]
	BreedingRecords      *handler.ResourceHandler[model.BreedingRecord]
	Transactions         *handler.ResourceHandler[model.Transaction]
	InventoryItems       *handler.ResourceHandler[model.InventoryItem]
	PestEntries          *handler.ResourceHandler[model.PestEntry]
}

func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	if deps.CORS != nil {
		r.Use(deps.CORS)
	}
	if deps.RateLimit != nil {
		r.Use(deps.RateLimit.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		// Public surface.
		api.Post("/auth/signup", deps.AuthHandler.Signup)
		api.Post("/auth/login", deps.AuthHandler.Login)
		api.Get("/weather/current", deps.WeatherHandler.Current)
		api.Get("/weather/forecast", deps.WeatherHandler.Forecast)
		api.Get("/pest-info", deps.PestEntries.List)
		api.Get("/pest-info/{id}", deps.PestEntries.Get)

		// Everything below requires a bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(deps.Auth.RequireAuth)

			protected.Mount("/crops", deps.Crops.Routes())
			protected.Mount("/batches", deps.Batches.Routes())
			protected.Mount("/livestock-records", deps.LivestockRecords.Routes())
			protected.Mount("/medical-records", deps.MedicalRecords.Routes())
			protected.Mount("/livestock-medical-records", deps.LivestockMedical.Routes())
			protected.Mount("/harvesting-records", deps.HarvestingRecords.Routes())
			protected.Mount("/breeding-records", deps.BreedingRecords.Routes())
			protected.Mount("/transactions", deps.Transactions.Routes())
			protected.Mount("/inventory", deps.InventoryItems.Routes())

			// Reads on pest entries are public above; writes are admin work.
			protected.Group(func(admin chi.Router) {
				admin.Use(deps.Auth.RequireRoles(model.RoleAdmin))
				admin.Post("/pest-info", deps.PestEntries.Create)
				admin.Put("/pest-info/{id}", deps.PestEntries.Update)
				admin.Delete("/pest-info/{id}", deps.PestEntries.Delete)
			})

			protected.Get("/profile", deps.UserHandler.Profile)
			protected.Put("/profile", deps.UserHandler.UpdateProfile)
			protected.Get("/settings", deps.UserHandler.Settings)
			protected.Put("/settings", deps.UserHandler.UpdateSettings)

			protected.Get("/notifications", deps.NotificationHandler.List)
			protected.Post("/notifications/check", deps.NotificationHandler.Check)
			protected.Put("/notifications/read-all", deps.NotificationHandler.MarkAllRead)
			protected.Put("/notifications/{id}/read", deps.NotificationHandler.MarkRead)
			protected.Delete("/notifications/{id}", deps.NotificationHandler.Delete)

			protected.Get("/finance-analytics/summary", deps.AnalyticsHandler.Summary)
			protected.Get("/finance-analytics/categories", deps.AnalyticsHandler.Categories)
			protected.Get("/finance-analytics/monthly-trends", deps.AnalyticsHandler.MonthlyTrends)
			protected.Get("/finance-analytics/batch-analytics", deps.AnalyticsHandler.Batches)
			protected.Get("/crop-analytics", deps.AnalyticsHandler.CropAnalytics)
			protected.Get("/analytics", deps.AnalyticsHandler.Dashboard)
		})
	})

	return r
}
