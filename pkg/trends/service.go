package trends

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const recentMetricsLimit = 20

// Store is the persistence surface the trend service needs.
type Store interface {
	SaveMetric(ctx context.Context, metric *Metric) error
	LatestMetric(ctx context.Context, patientID, name string) (*Metric, error)
	RecentMetrics(ctx context.Context, patientID string, limit int) ([]Metric, error)
	SaveRecommendations(ctx context.Context, recs []LifestyleRecommendation) error
	ActiveRecommendations(ctx context.Context, patientID string) ([]LifestyleRecommendation, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// direction compares a new reading against the previous one. The
// tracked metrics (weight, blood pressure, blood sugar, resting heart
// rate) all read better when lower, so a drop counts as improving.
func direction(previous *Metric, value float64) string {
	if previous == nil || previous.Value == value {
		return DirectionStable
	}
	if value < previous.Value {
		return DirectionImproving
	}
	return DirectionDeclining
}

// RecordSnapshot stores a metric reading, deriving the trend direction
// from the patient's previous reading of the same metric.
func (s *Service) RecordSnapshot(ctx context.Context, patientID, name string, value float64, unit string) (*Metric, error) {
	previous, err := s.store.LatestMetric(ctx, patientID, name)
	if err != nil {
		return nil, fmt.Errorf("loading previous %s reading: %w", name, err)
	}

	metric := &Metric{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		Name:       name,
		Value:      value,
		Unit:       unit,
		Direction:  direction(previous, value),
		RecordedAt: s.now().UTC(),
	}
	if err := s.store.SaveMetric(ctx, metric); err != nil {
		return nil, fmt.Errorf("persisting trend snapshot: %w", err)
	}
	return metric, nil
}

// Recent returns the patient's latest snapshots, newest first.
func (s *Service) Recent(ctx context.Context, patientID string) ([]Metric, error) {
	return s.store.RecentMetrics(ctx, patientID, recentMetricsLimit)
}

// Recommendations returns the patient's active lifestyle guidance,
// seeding the standing defaults on first read.
func (s *Service) Recommendations(ctx context.Context, patientID string) ([]LifestyleRecommendation, error) {
	recs, err := s.store.ActiveRecommendations(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs, nil
	}

	recs = defaultRecommendations(patientID, s.now().UTC())
	if err := s.store.SaveRecommendations(ctx, recs); err != nil {
		return nil, fmt.Errorf("seeding lifestyle recommendations: %w", err)
	}
	return recs, nil
}

func defaultRecommendations(patientID string, now time.Time) []LifestyleRecommendation {
	defaults := []struct {
		category       string
		recommendation string
		factors        string
	}{
		{"Exercise", "Start with 20 minutes of brisk walking daily", "Based on your current fitness level"},
		{"Diet", "Include more green leafy vegetables in your meals", "To improve overall nutrition"},
		{"Sleep", "Maintain a consistent sleep schedule of 7-8 hours", "For better recovery and health"},
		{"Hydration", "Drink at least 2 liters of water daily", "To maintain proper hydration"},
	}

	recs := make([]LifestyleRecommendation, 0, len(defaults))
	for _, d := range defaults {
		recs = append(recs, LifestyleRecommendation{
			ID:             uuid.New().String(),
			PatientID:      patientID,
			Category:       d.category,
			Recommendation: d.recommendation,
			Factors:        d.factors,
			Status:         "Active",
			CreatedAt:      now,
		})
	}
	return recs
}
