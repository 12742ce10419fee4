package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmstead/internal/config"
	"farmstead/internal/database"
	"farmstead/internal/handler"
	"farmstead/internal/middleware"
	"farmstead/internal/repository"
	"farmstead/internal/router"
	"farmstead/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.Connect(context.Background(), database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.SessionIdleTimeout)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo)
	weatherService := service.NewWeatherService(cfg.WeatherAPIURL, cfg.WeatherAPIKey, cfg.WeatherDefaultCity)
	notificationService := service.NewNotificationService(
		notificationRepo, alertRepo, userRepo, weatherService,
		cfg.LowStockThreshold, cfg.HarvestDueWindow,
	)
	analyticsService := service.NewAnalyticsService(financeRepo, reportRepo)

	appRouter := router.New(router.Deps{
		Auth:                authMiddleware,
		RateLimit:           middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM),
		CORS:                middleware.CORS(cfg.CORSOrigins),
		AuthHandler:         authHandler,
		UserHandler:         handler.NewUserHandler(userService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		WeatherHandler:      handler.NewWeatherHandler(weatherService),
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

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	go notificationService.StartTicker(sweepCtx, cfg.NotifyCheckInterval)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           middleware.Timeout(cfg.RequestTimeout)(appRouter),
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				sweepCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
