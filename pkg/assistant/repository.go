package assistant

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAnalysisNotFound = errors.New("symptom analysis not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&ChatTurn{},
		&SymptomAnalysis{},
		&MedicationRecommendation{},
		&PreventiveAdvice{},
	)
}

func (r *Repository) SaveTurn(ctx context.Context, turn *ChatTurn) error {
	turn.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(turn).Error
}

func (r *Repository) RecentTurns(ctx context.Context, userID string, limit int) ([]ChatTurn, error) {
	var turns []ChatTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error
	return turns, err
}

func (r *Repository) SaveAnalysis(ctx context.Context, analysis *SymptomAnalysis) error {
	analysis.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *Repository) GetAnalysis(ctx context.Context, id string) (*SymptomAnalysis, error) {
	var analysis SymptomAnalysis
	result := r.db.WithContext(ctx).First(&analysis, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrAnalysisNotFound
	}
	return &analysis, result.Error
}

func (r *Repository) RecentAnalyses(ctx context.Context, patientID string, limit int) ([]SymptomAnalysis, error) {
	var analyses []SymptomAnalysis
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	return analyses, err
}

func (r *Repository) SaveMedications(ctx context.Context, medications []MedicationRecommendation) error {
	if len(medications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&medications).Error
}

func (r *Repository) MedicationsFor(ctx context.Context, analysisID string) ([]MedicationRecommendation, error) {
	var medications []MedicationRecommendation
	err := r.db.WithContext(ctx).
		Where("analysis_id = ?", analysisID).
		Find(&medications).Error
	return medications, err
}

func (r *Repository) SaveAdvice(ctx context.Context, advice []PreventiveAdvice) error {
	if len(advice) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&advice).Error
}
