package trends

import "time"

// Trend directions.
const (
	DirectionImproving = "Improving"
	DirectionStable    = "Stable"
	DirectionDeclining = "Declining"
)

// Metric is one recorded snapshot of a tracked health metric.
type Metric struct {
	ID         string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID  string    `json:"patient_id" gorm:"column:patient_id;index"`
	Name       string    `json:"metric_name" gorm:"column:metric_name"`
	Value      float64   `json:"metric_value" gorm:"column:metric_value"`
	Unit       string    `json:"unit" gorm:"column:unit"`
	Direction  string    `json:"trend_direction" gorm:"column:trend_direction"`
	RecordedAt time.Time `json:"recorded_at" gorm:"column:recorded_at"`
}

func (Metric) TableName() string {
	return "ai_health_trends"
}

// LifestyleRecommendation is standing lifestyle guidance shown to the
// patient until dismissed.
type LifestyleRecommendation struct {
	ID             string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID      string    `json:"patient_id" gorm:"column:patient_id;index"`
	Category       string    `json:"category" gorm:"column:category"`
	Recommendation string    `json:"recommendation" gorm:"column:recommendation"`
	Factors        string    `json:"personalization_factors" gorm:"column:personalization_factors"`
	Status         string    `json:"status" gorm:"column:status"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (LifestyleRecommendation) TableName() string {
	return "ai_lifestyle_recommendations"
}
