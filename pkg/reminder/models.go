package reminder

import "time"

const TypeInApp = "In-App"

// Reminder is one scheduled notification slot for an appointment. The
// (appointment_id, fire_at) pair is unique so re-planning the same
// appointment can never create duplicate rows.
type Reminder struct {
	ID            string     `json:"id" gorm:"primaryKey;column:id"`
	AppointmentID string     `json:"appointment_id" gorm:"column:appointment_id;uniqueIndex:idx_reminder_slot"`
	PatientID     string     `json:"patient_id" gorm:"column:patient_id;index"`
	ReminderType  string     `json:"reminder_type" gorm:"column:reminder_type"`
	FireAt        time.Time  `json:"fire_at" gorm:"column:fire_at;uniqueIndex:idx_reminder_slot"`
	Sent          bool       `json:"sent" gorm:"column:sent"`
	SentAt        *time.Time `json:"sent_at,omitempty" gorm:"column:sent_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Reminder) TableName() string {
	return "ai_appointment_reminders"
}

// Appointment is owned by the scheduling system; this service only
// reads it.
type Appointment struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID   string    `json:"patient_id" gorm:"column:patient_id"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"column:scheduled_at"`
	Status      string    `json:"status" gorm:"column:status"`
}

func (Appointment) TableName() string {
	return "appointments"
}
