package monitoring

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("monitoring record not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *Repository) Create(ctx context.Context, rec *Record) error {
	rec.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) History(ctx context.Context, patientID string, limit int) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("measured_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *Repository) ActiveAlerts(ctx context.Context, patientID string) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND alert_triggered = ? AND status <> ?", patientID, true, StatusResolved).
		Order("measured_at DESC").
		Limit(10).
		Find(&records).Error
	return records, err
}

func (r *Repository) Resolve(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&Record{}).
		Where("id = ?", id).
		Update("status", StatusResolved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
