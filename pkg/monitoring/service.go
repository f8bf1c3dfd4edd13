package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/observability/metrics"
	"github.com/drcares-ai/platform/pkg/vitals"
	"github.com/google/uuid"
)

// ErrAlertNotPersisted marks a classification that triggered an alert
// but could not be written to the store. Callers must be able to tell
// "no alert" apart from "alert computed but not saved".
var ErrAlertNotPersisted = errors.New("alert classification not persisted")

type Store interface {
	Create(ctx context.Context, rec *Record) error
	History(ctx context.Context, patientID string, limit int) ([]Record, error)
	ActiveAlerts(ctx context.Context, patientID string) ([]Record, error)
	Resolve(ctx context.Context, id string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

type Service struct {
	classifier *vitals.Classifier
	store      Store
	producer   EventPublisher
}

func NewService(classifier *vitals.Classifier, store Store, producer EventPublisher) *Service {
	return &Service{classifier: classifier, store: store, producer: producer}
}

// RecordObservation classifies the free-text vitals and persists the
// result. The classification result is returned even when persistence
// fails, wrapped in ErrAlertNotPersisted for triggered results.
func (s *Service) RecordObservation(ctx context.Context, patientID, diseaseName, vitalSigns string) (*Record, vitals.Result, error) {
	_, result := s.classifier.ClassifyObservation(vitalSigns)

	record := &Record{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		DiseaseName:    diseaseName,
		VitalSigns:     vitalSigns,
		MeasuredAt:     time.Now().UTC(),
		Status:         result.Status.String(),
		AlertTriggered: result.Triggered,
		AlertReason:    result.Reason,
	}

	if err := s.store.Create(ctx, record); err != nil {
		if result.Triggered {
			return nil, result, fmt.Errorf("%w: %v", ErrAlertNotPersisted, err)
		}
		return nil, result, fmt.Errorf("persisting monitoring record: %w", err)
	}
	metrics.ObserveClassification(record.Status)

	if result.Triggered && s.producer != nil {
		event := map[string]interface{}{
			"record_id":  record.ID,
			"patient_id": patientID,
			"disease":    diseaseName,
			"status":     record.Status,
			"reason":     record.AlertReason,
		}
		if err := s.producer.PublishEvent(ctx, "monitoring-alert", "monitoring-service", event); err != nil {
			logger.Log.WithError(err).WithField("record_id", record.ID).Warn("failed to publish alert event")
		}
	}

	return record, result, nil
}

func (s *Service) History(ctx context.Context, patientID string) ([]Record, error) {
	return s.store.History(ctx, patientID, 50)
}

func (s *Service) ActiveAlerts(ctx context.Context, patientID string) ([]Record, error) {
	return s.store.ActiveAlerts(ctx, patientID)
}

func (s *Service) ResolveAlert(ctx context.Context, id string) error {
	return s.store.Resolve(ctx, id)
}
