package risk

import (
	"context"
	"time"

	"github.com/drcares-ai/platform/pkg/monitoring"
	"gorm.io/gorm"
)

// Repository implements History against the monitoring, analysis and
// prediction tables, and persists predictions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Prediction{})
}

func (r *Repository) SavePredictions(ctx context.Context, predictions []Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&predictions).Error
}

func (r *Repository) RecentPredictions(ctx context.Context, patientID string, limit int) ([]Prediction, error) {
	var predictions []Prediction
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("predicted_at DESC").
		Limit(limit).
		Find(&predictions).Error
	return predictions, err
}

func (r *Repository) CountHighRiskPredictions(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Prediction{}).
		Where("patient_id = ? AND risk_level IN ?", patientID, []string{LevelHigh, LevelCritical}).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountUnresolvedAlerts(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table((monitoring.Record{}).TableName()).
		Where("patient_id = ? AND alert_triggered = ? AND status <> ?", patientID, true, monitoring.StatusResolved).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountRecentAnalyses(ctx context.Context, patientID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("ai_symptom_analysis").
		Where("patient_id = ? AND created_at >= ?", patientID, since).
		Count(&count).Error
	return count, err
}
