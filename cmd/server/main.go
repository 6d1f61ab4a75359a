package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/repasoapp/repaso/internal/api"
	"github.com/repasoapp/repaso/internal/config"
	"github.com/repasoapp/repaso/internal/db"
	"github.com/repasoapp/repaso/internal/logger"
	"github.com/repasoapp/repaso/internal/repository/sqlite"
	"github.com/repasoapp/repaso/internal/services"
	"github.com/repasoapp/repaso/internal/srs"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Repaso Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("graduation_threshold=%d", cfg.GraduationThreshold)
	log.Debug("practice_limit=%d", cfg.PracticeLimit)
	log.Debug("forecast_days=%d", cfg.ForecastDays)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	itemRepo := sqlite.NewItemRepository(database.DB)
	taskRepo := sqlite.NewTaskRepository(database.DB)

	ruleCfg := srs.DefaultConfig()
	ruleCfg.GraduationThreshold = cfg.GraduationThreshold
	rule := srs.New(ruleCfg)

	srv := &api.Server{
		DB:              database,
		ReviewService:   services.NewReviewService(itemRepo, rule),
		QueueService:    services.NewQueueService(itemRepo, taskRepo),
		ForecastService: services.NewForecastService(itemRepo),
		StatsService:    services.NewStatsService(itemRepo),
		ImportService:   services.NewImportService(taskRepo),
		PracticeLimit:   cfg.PracticeLimit,
		ForecastDays:    cfg.ForecastDays,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Repaso Server Stopped")
	log.Info("===========================================")
}
