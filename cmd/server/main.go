package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/handlers"
	"finsight/internal/middleware"
	"finsight/internal/repositories"
	"finsight/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize model store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := repositories.NewModelStateRepository(db.DB)
	metrics := services.NewPrometheusMetrics()
	registry := services.NewRegistry(cfg, store, metrics)

	if err := registry.Warmup(); err != nil {
		slog.Error("engine warmup failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	categorizeHandler := handlers.NewCategorizeHandler(registry.Classifier, registry.Metrics)
	anomalyHandler := handlers.NewAnomalyHandler(registry.Detector, registry.Metrics)
	cashflowHandler := handlers.NewCashflowHandler(registry.Forecaster, registry.Metrics, cfg.Models.ForecastMonthsDefault)
	healthScoreHandler := handlers.NewHealthScoreHandler(registry.Scorer, registry.Metrics)
	patternsHandler := handlers.NewPatternsHandler(registry.Patterns, registry.Metrics)
	healthHandler := handlers.NewHealthCheckHandler(db, registry)

	e.POST("/categorize", categorizeHandler.Categorize)
	e.POST("/detect-anomaly", anomalyHandler.DetectAnomalies)
	e.POST("/predict-cashflow", cashflowHandler.PredictCashflow)
	e.POST("/financial-health", healthScoreHandler.ScoreHealth)
	e.POST("/analyze-patterns", patternsHandler.AnalyzePatterns)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := &http.Server{
		Addr:         cfg.Address(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "address", cfg.Address(), "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
