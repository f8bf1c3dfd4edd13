package monitoring

import "time"

const (
	StatusNormal   = "Normal"
	StatusWarning  = "Warning"
	StatusAlert    = "Alert"
	StatusResolved = "Resolved"
)

// Record is one chronic disease monitoring entry: the raw observation
// text a patient submitted plus the classification attached to it.
// Immutable once recorded, except for resolving the alert status.
type Record struct {
	ID             string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID      string    `json:"patient_id" gorm:"column:patient_id;index"`
	DiseaseName    string    `json:"disease_name" gorm:"column:disease_name"`
	VitalSigns     string    `json:"vital_signs" gorm:"column:vital_signs"`
	MeasuredAt     time.Time `json:"measured_at" gorm:"column:measured_at"`
	Status         string    `json:"status" gorm:"column:status"`
	AlertTriggered bool      `json:"alert_triggered" gorm:"column:alert_triggered"`
	AlertReason    string    `json:"alert_reason,omitempty" gorm:"column:alert_reason"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "ai_disease_monitoring"
}
