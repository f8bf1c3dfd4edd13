package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/common/models"
	"github.com/drcares-ai/platform/pkg/observability/metrics"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Store interface {
	SaveTurn(ctx context.Context, turn *ChatTurn) error
	RecentTurns(ctx context.Context, userID string, limit int) ([]ChatTurn, error)
	SaveAnalysis(ctx context.Context, analysis *SymptomAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*SymptomAnalysis, error)
	RecentAnalyses(ctx context.Context, patientID string, limit int) ([]SymptomAnalysis, error)
	SaveMedications(ctx context.Context, medications []MedicationRecommendation) error
	MedicationsFor(ctx context.Context, analysisID string) ([]MedicationRecommendation, error)
	SaveAdvice(ctx context.Context, advice []PreventiveAdvice) error
}

type Service struct {
	classifier *IntentClassifier
	store      Store
}

func NewService(classifier *IntentClassifier, store Store) *Service {
	return &Service{classifier: classifier, store: store}
}

// ProcessMessage classifies the message and logs the turn. Logging is
// best effort: a store failure never blocks the chat response.
func (s *Service) ProcessMessage(ctx context.Context, userID, userType, message string) models.ChatResponse {
	intent, response := s.classifier.Classify(message)

	turn := &ChatTurn{
		ID:       uuid.New().String(),
		UserID:   userID,
		UserType: userType,
		Message:  message,
		Response: response,
		Intent:   intent,
	}
	if err := s.store.SaveTurn(ctx, turn); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("failed to log chat turn")
	}
	metrics.ObserveChatTurn()

	return models.ChatResponse{Intent: intent, Response: response}
}

// AnalyzeSymptoms diagnoses the symptom list and persists the analysis.
// Unlike chat logging the stored row is load-bearing (medication
// recommendations reference it), so store failures propagate.
func (s *Service) AnalyzeSymptoms(ctx context.Context, patientID string, symptoms []string) (*models.SymptomResponse, error) {
	symptomsText := strings.Join(symptoms, ", ")
	diagnosis := DiagnoseSymptoms(symptomsText)

	recommendations, err := json.Marshal(diagnosis.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("encoding recommendations: %w", err)
	}

	analysis := &SymptomAnalysis{
		ID:              uuid.New().String(),
		PatientID:       patientID,
		Symptoms:        symptomsText,
		Diagnosis:       diagnosis.Text,
		Confidence:      diagnosis.Confidence,
		Recommendations: datatypes.JSON(recommendations),
	}
	if err := s.store.SaveAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("persisting symptom analysis: %w", err)
	}
	metrics.ObserveSymptomAnalysis()

	return &models.SymptomResponse{
		AnalysisID:      analysis.ID,
		Diagnosis:       diagnosis.Text,
		Confidence:      diagnosis.Confidence,
		Recommendations: diagnosis.Recommendations,
	}, nil
}

// RecommendForAnalysis derives medication suggestions from a stored
// analysis and persists them.
func (s *Service) RecommendForAnalysis(ctx context.Context, analysisID string) ([]MedicationRecommendation, error) {
	analysis, err := s.store.GetAnalysis(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	medications := RecommendMedications(analysis.Diagnosis)
	rows := make([]MedicationRecommendation, 0, len(medications))
	now := time.Now().UTC()
	for _, med := range medications {
		rows = append(rows, MedicationRecommendation{
			ID:         uuid.New().String(),
			AnalysisID: analysis.ID,
			PatientID:  analysis.PatientID,
			Name:       med.Name,
			Dosage:     med.Dosage,
			Frequency:  med.Frequency,
			Duration:   med.Duration,
			Reasoning:  med.Reasoning,
			CreatedAt:  now,
		})
	}
	if err := s.store.SaveMedications(ctx, rows); err != nil {
		return nil, fmt.Errorf("persisting medication recommendations: %w", err)
	}

	return rows, nil
}

// PreventiveCare stores and returns the standing advice list for a
// patient.
func (s *Service) PreventiveCare(ctx context.Context, patientID string) ([]PreventiveAdvice, error) {
	advice := PreventiveCareAdvice()
	rows := make([]PreventiveAdvice, 0, len(advice))
	now := time.Now().UTC()
	for _, item := range advice {
		rows = append(rows, PreventiveAdvice{
			ID:        uuid.New().String(),
			PatientID: patientID,
			Category:  item.Category,
			Text:      item.Text,
			Priority:  item.Priority,
			CreatedAt: now,
		})
	}
	if err := s.store.SaveAdvice(ctx, rows); err != nil {
		return nil, fmt.Errorf("persisting preventive care advice: %w", err)
	}
	return rows, nil
}

// ChatHistory returns the user's recent turns, newest first.
func (s *Service) ChatHistory(ctx context.Context, userID string) ([]ChatTurn, error) {
	return s.store.RecentTurns(ctx, userID, 20)
}

// RecentAnalyses returns the patient's latest symptom analyses.
func (s *Service) RecentAnalyses(ctx context.Context, patientID string) ([]SymptomAnalysis, error) {
	return s.store.RecentAnalyses(ctx, patientID, 5)
}

// MedicationsFor returns previously generated recommendations for an
// analysis without regenerating them.
func (s *Service) MedicationsFor(ctx context.Context, analysisID string) ([]MedicationRecommendation, error) {
	return s.store.MedicationsFor(ctx, analysisID)
}

// IntentTable exposes the canonical keyword table for the chat widget.
func (s *Service) IntentTable() IntentTable {
	return s.classifier.Table()
}
