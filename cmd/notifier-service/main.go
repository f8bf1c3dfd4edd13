package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/drcares-ai/platform/pkg/common/config"
	"github.com/drcares-ai/platform/pkg/common/kafka"
	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/common/models"
)

// The notifier turns platform events into in-app notifications. Today
// delivery is the structured log stream; the handler is where a push
// or SMS gateway would plug in.
func main() {
	logger.Init()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alertConsumer := kafka.NewConsumer(cfg.AlertTopic, cfg.KafkaGroupID)
	defer alertConsumer.Close()

	reminderConsumer := kafka.NewConsumer(cfg.ReminderDueTopic, cfg.KafkaGroupID)
	defer reminderConsumer.Close()

	go func() {
		if err := alertConsumer.Consume(ctx, notify("health alert")); err != nil && err != context.Canceled {
			logger.Log.WithError(err).Error("alert consumer stopped")
		}
	}()

	go func() {
		if err := reminderConsumer.Consume(ctx, notify("appointment reminder")); err != nil && err != context.Canceled {
			logger.Log.WithError(err).Error("reminder consumer stopped")
		}
	}()

	// Liveness only; the notifier serves no API.
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
		})
		if err := http.ListenAndServe(cfg.ServerHost+":"+cfg.ServerPort, nil); err != nil {
			logger.Log.WithError(err).Error("health endpoint stopped")
		}
	}()

	logger.Log.Info("Notifier Service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Notifier Service...")
	cancel()
	logger.Log.Info("Notifier Service stopped")
}

func notify(kind string) kafka.EventHandler {
	return func(_ context.Context, event models.Event) error {
		fields := map[string]interface{}{
			"kind":       kind,
			"event_id":   event.ID,
			"event_type": event.Type,
			"source":     event.Source,
		}
		if patientID, ok := event.Data["patient_id"]; ok {
			fields["patient_id"] = patientID
		}
		logger.Log.WithFields(fields).Info("notification delivered")
		return nil
	}
}
