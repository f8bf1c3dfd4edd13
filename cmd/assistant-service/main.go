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

	"github.com/drcares-ai/platform/pkg/assistant"
	"github.com/drcares-ai/platform/pkg/common/config"
	"github.com/drcares-ai/platform/pkg/common/database"
	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/common/middleware"
	"github.com/drcares-ai/platform/pkg/observability/metrics"
	"github.com/drcares-ai/platform/pkg/trends"
)

func main() {
	logger.Init()
	cfg := config.Load()
	metrics.Init()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := assistant.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate assistant tables")
	}
	trendRepo := trends.NewRepository(db)
	if err := trendRepo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate trend tables")
	}

	table, err := assistant.LoadIntentTable(cfg.IntentRulesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to built-in intent table")
		table = assistant.DefaultIntentTable()
	}

	svc := assistant.NewService(assistant.NewIntentClassifier(table), repo)
	trendSvc := trends.NewService(trendRepo)

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
	assistant.NewHTTPHandler(svc, cfg.MaxRequestBody).Register(api)
	trends.NewHTTPHandler(trendSvc, cfg.MaxRequestBody).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Assistant Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Assistant Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Assistant Service stopped")
}
