package risk

import (
	"time"

	"github.com/google/uuid"
)

const (
	LevelLow      = "Low"
	LevelMedium   = "Medium"
	LevelHigh     = "High"
	LevelCritical = "Critical"
)

// Prediction is a stored long-horizon health risk assessment.
type Prediction struct {
	ID              string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID       string    `json:"patient_id" gorm:"column:patient_id;index"`
	RiskType        string    `json:"risk_type" gorm:"column:risk_type"`
	RiskLevel       string    `json:"risk_level" gorm:"column:risk_level"`
	Probability     float64   `json:"probability" gorm:"column:probability"`
	Factors         string    `json:"factors" gorm:"column:factors"`
	Recommendations string    `json:"recommendations" gorm:"column:recommendations"`
	PredictedAt     time.Time `json:"predicted_at" gorm:"column:predicted_at"`
}

func (Prediction) TableName() string {
	return "ai_health_risk_predictions"
}

type ageRule struct {
	minAge          int
	riskType        string
	level           string
	probability     float64
	factors         string
	recommendations string
}

// Age-banded assessments. Both rows can fire for the same patient.
var ageRules = []ageRule{
	{
		minAge:          50,
		riskType:        "Cardiovascular Disease",
		level:           LevelMedium,
		probability:     0.35,
		factors:         "Age above 50 years",
		recommendations: "Regular blood pressure monitoring, annual cardiovascular checkup",
	},
	{
		minAge:          40,
		riskType:        "Type 2 Diabetes",
		level:           LevelLow,
		probability:     0.25,
		factors:         "Age factor",
		recommendations: "Annual glucose screening, maintain healthy weight",
	},
}

// PredictRisks derives risk assessments from the patient's date of
// birth. Pure function; persistence is the caller's concern.
func PredictRisks(patientID string, dateOfBirth, now time.Time) []Prediction {
	age := yearsBetween(dateOfBirth, now)

	var predictions []Prediction
	for _, rule := range ageRules {
		if age <= rule.minAge {
			continue
		}
		predictions = append(predictions, Prediction{
			ID:              uuid.New().String(),
			PatientID:       patientID,
			RiskType:        rule.riskType,
			RiskLevel:       rule.level,
			Probability:     rule.probability,
			Factors:         rule.factors,
			Recommendations: rule.recommendations,
			PredictedAt:     now.UTC(),
		})
	}
	return predictions
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.YearDay() < from.YearDay() {
		years--
	}
	return years
}
