package models

import "time"

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // monitoring-alert, reminder-due
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Observation submission
type ObservationRequest struct {
	PatientID   string `json:"patient_id"`
	DiseaseName string `json:"disease_name"`
	VitalSigns  string `json:"vital_signs"`
}

type ObservationResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Triggered bool      `json:"triggered"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat
type ChatRequest struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"` // patient, doctor, guest
	Message  string `json:"message"`
}

type ChatResponse struct {
	Intent   string `json:"intent"`
	Response string `json:"response"`
}

// Symptom analysis
type SymptomRequest struct {
	PatientID string   `json:"patient_id"`
	Symptoms  []string `json:"symptoms"`
}

type SymptomResponse struct {
	AnalysisID      string   `json:"analysis_id"`
	Diagnosis       string   `json:"diagnosis"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}
