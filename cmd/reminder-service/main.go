package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/drcares-ai/platform/pkg/common/config"
	"github.com/drcares-ai/platform/pkg/common/database"
	"github.com/drcares-ai/platform/pkg/common/kafka"
	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/common/middleware"
	"github.com/drcares-ai/platform/pkg/observability/metrics"
	"github.com/drcares-ai/platform/pkg/reminder"
	"github.com/drcares-ai/platform/pkg/risk"
)

func main() {
	logger.Init()
	cfg := config.Load()
	metrics.Init()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := reminder.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate reminder tables")
	}
	riskRepo := risk.NewRepository(db)

	locker := reminder.NewRedisLocker(database.GetRedis())

	producer := kafka.NewProducer(cfg.ReminderDueTopic)
	defer producer.Close()

	aggregator := risk.NewAggregator(riskRepo, cfg.AnalysisLookback, cfg.RecentAnalysisFloor)
	svc := reminder.NewService(repo, repo, aggregator, producer, locker, cfg.ReminderHorizon, cfg.ReminderLockTTL)

	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging, middleware.CORS)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	reminder.NewHTTPHandler(svc).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Reminder Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	go func() {
		// Plan once on boot, then on the configured interval.
		if err := svc.RunOnce(ctx); err != nil {
			logger.Log.WithError(err).Warn("reminder planning pass failed")
		}

		ticker := time.NewTicker(cfg.ReminderRunInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := svc.RunOnce(ctx); err != nil {
					logger.Log.WithError(err).Warn("reminder planning pass failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Reminder Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Reminder Service stopped")
}
