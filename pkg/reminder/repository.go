package reminder

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate covers only the reminder table; appointments are owned by
// the scheduling system.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Reminder{})
}

func (r *Repository) ApprovedInWindow(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	var appointments []Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at >= ? AND scheduled_at <= ?", "Approved", from, to).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *Repository) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var appointment Appointment
	result := r.db.WithContext(ctx).First(&appointment, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return &appointment, result.Error
}

// InsertIfAbsent is the idempotent half of planning: a conflicting
// (appointment_id, fire_at) row is silently skipped in a single
// conditional insert, so concurrent planners cannot double-book a slot.
func (r *Repository) InsertIfAbsent(ctx context.Context, rem *Reminder) (bool, error) {
	rem.CreatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}, {Name: "fire_at"}},
			DoNothing: true,
		}).
		Create(rem)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FetchDueAndMark flips due reminders to sent and returns them in one
// statement (UPDATE .. RETURNING), so two concurrent readers can never
// both deliver the same reminder.
func (r *Repository) FetchDueAndMark(ctx context.Context, patientID string, now time.Time) ([]Reminder, error) {
	var reminders []Reminder
	err := r.db.WithContext(ctx).
		Model(&reminders).
		Clauses(clause.Returning{}).
		Where("patient_id = ? AND sent = ? AND fire_at <= ?", patientID, false, now).
		Updates(map[string]interface{}{"sent": true, "sent_at": now.UTC()}).Error
	return reminders, err
}

func (r *Repository) Pending(ctx context.Context, patientID string) ([]Reminder, error) {
	var reminders []Reminder
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND sent = ?", patientID, false).
		Order("fire_at ASC").
		Find(&reminders).Error
	return reminders, err
}
