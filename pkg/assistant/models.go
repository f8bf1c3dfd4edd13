package assistant

import (
	"time"

	"gorm.io/datatypes"
)

// ChatTurn is one processed chat message and its canned response.
// Append-only.
type ChatTurn struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	UserID    string    `json:"user_id" gorm:"column:user_id;index"`
	UserType  string    `json:"user_type" gorm:"column:user_type"`
	Message   string    `json:"message" gorm:"column:message"`
	Response  string    `json:"response" gorm:"column:response"`
	Intent    string    `json:"intent" gorm:"column:intent"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (ChatTurn) TableName() string {
	return "ai_chatbot_conversations"
}

type SymptomAnalysis struct {
	ID              string         `json:"id" gorm:"primaryKey;column:id"`
	PatientID       string         `json:"patient_id" gorm:"column:patient_id;index"`
	Symptoms        string         `json:"symptoms" gorm:"column:symptoms"`
	Diagnosis       string         `json:"diagnosis" gorm:"column:diagnosis"`
	Confidence      float64        `json:"confidence" gorm:"column:confidence"`
	Recommendations datatypes.JSON `json:"recommendations" gorm:"column:recommendations"`
	CreatedAt       time.Time      `json:"created_at" gorm:"column:created_at"`
}

func (SymptomAnalysis) TableName() string {
	return "ai_symptom_analysis"
}

type MedicationRecommendation struct {
	ID         string    `json:"id" gorm:"primaryKey;column:id"`
	AnalysisID string    `json:"analysis_id" gorm:"column:analysis_id;index"`
	PatientID  string    `json:"patient_id" gorm:"column:patient_id"`
	Name       string    `json:"name" gorm:"column:name"`
	Dosage     string    `json:"dosage" gorm:"column:dosage"`
	Frequency  string    `json:"frequency" gorm:"column:frequency"`
	Duration   string    `json:"duration" gorm:"column:duration"`
	Reasoning  string    `json:"reasoning" gorm:"column:reasoning"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (MedicationRecommendation) TableName() string {
	return "ai_medication_recommendations"
}

type PreventiveAdvice struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	PatientID string    `json:"patient_id" gorm:"column:patient_id;index"`
	Category  string    `json:"category" gorm:"column:category"`
	Text      string    `json:"text" gorm:"column:advice_text"`
	Priority  string    `json:"priority" gorm:"column:priority"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (PreventiveAdvice) TableName() string {
	return "ai_preventive_care"
}
