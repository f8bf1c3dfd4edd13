package trends

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Metric{}, &LifestyleRecommendation{})
}

func (r *Repository) SaveMetric(ctx context.Context, metric *Metric) error {
	if metric.RecordedAt.IsZero() {
		metric.RecordedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(metric).Error
}

// LatestMetric returns the most recent snapshot of the named metric,
// or nil when the patient has none yet.
func (r *Repository) LatestMetric(ctx context.Context, patientID, name string) (*Metric, error) {
	var metric Metric
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND metric_name = ?", patientID, name).
		Order("recorded_at DESC").
		First(&metric).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (r *Repository) RecentMetrics(ctx context.Context, patientID string, limit int) ([]Metric, error) {
	var metrics []Metric
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}

func (r *Repository) SaveRecommendations(ctx context.Context, recs []LifestyleRecommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&recs).Error
}

func (r *Repository) ActiveRecommendations(ctx context.Context, patientID string) ([]LifestyleRecommendation, error) {
	var recs []LifestyleRecommendation
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, "Active").
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}
