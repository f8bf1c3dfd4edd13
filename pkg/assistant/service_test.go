package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeStore struct {
	turns       []*ChatTurn
	analyses    map[string]*SymptomAnalysis
	medications []MedicationRecommendation
	advice      []PreventiveAdvice

	turnErr     error
	analysisErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{analyses: map[string]*SymptomAnalysis{}}
}

func (f *fakeStore) SaveTurn(_ context.Context, turn *ChatTurn) error {
	if f.turnErr != nil {
		return f.turnErr
	}
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeStore) RecentTurns(_ context.Context, userID string, limit int) ([]ChatTurn, error) {
	var out []ChatTurn
	for _, turn := range f.turns {
		if turn.UserID == userID {
			out = append(out, *turn)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SaveAnalysis(_ context.Context, analysis *SymptomAnalysis) error {
	if f.analysisErr != nil {
		return f.analysisErr
	}
	f.analyses[analysis.ID] = analysis
	return nil
}

func (f *fakeStore) GetAnalysis(_ context.Context, id string) (*SymptomAnalysis, error) {
	analysis, ok := f.analyses[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}

func (f *fakeStore) RecentAnalyses(_ context.Context, patientID string, limit int) ([]SymptomAnalysis, error) {
	var out []SymptomAnalysis
	for _, analysis := range f.analyses {
		if analysis.PatientID == patientID {
			out = append(out, *analysis)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) SaveMedications(_ context.Context, medications []MedicationRecommendation) error {
	f.medications = append(f.medications, medications...)
	return nil
}

func (f *fakeStore) MedicationsFor(_ context.Context, analysisID string) ([]MedicationRecommendation, error) {
	var out []MedicationRecommendation
	for _, med := range f.medications {
		if med.AnalysisID == analysisID {
			out = append(out, med)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveAdvice(_ context.Context, advice []PreventiveAdvice) error {
	f.advice = append(f.advice, advice...)
	return nil
}

func newTestService(store Store) *Service {
	return NewService(NewIntentClassifier(DefaultIntentTable()), store)
}

func TestProcessMessageLogsTurn(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	resp := svc.ProcessMessage(context.Background(), "patient-1", "patient", "I'd like to book an appointment")
	if resp.Intent != "appointment_booking" {
		t.Fatalf("expected appointment_booking, got %s", resp.Intent)
	}
	if len(store.turns) != 1 {
		t.Fatalf("expected 1 logged turn, got %d", len(store.turns))
	}
	turn := store.turns[0]
	if turn.Intent != "appointment_booking" || turn.UserID != "patient-1" {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}

func TestProcessMessageStoreFailureIsBestEffort(t *testing.T) {
	store := newFakeStore()
	store.turnErr = errors.New("db down")
	svc := newTestService(store)

	resp := svc.ProcessMessage(context.Background(), "patient-1", "patient", "hello")
	if resp.Intent != "greeting" || resp.Response == "" {
		t.Fatalf("expected greeting response despite store failure, got %+v", resp)
	}
}

func TestAnalyzeSymptomsPersists(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	resp, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", []string{"fever", "cough"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Diagnosis, "respiratory") {
		t.Fatalf("expected respiratory diagnosis, got %q", resp.Diagnosis)
	}
	saved, ok := store.analyses[resp.AnalysisID]
	if !ok {
		t.Fatal("expected analysis to be persisted")
	}
	if saved.Symptoms != "fever, cough" {
		t.Fatalf("expected joined symptoms, got %q", saved.Symptoms)
	}
}

func TestAnalyzeSymptomsStoreFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.analysisErr = errors.New("db down")
	svc := newTestService(store)

	if _, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", []string{"headache"}); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestRecommendForAnalysis(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	resp, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", []string{"headache"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meds, err := svc.RecommendForAnalysis(context.Background(), resp.AnalysisID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Ibuprofen" {
		t.Fatalf("expected Ibuprofen, got %+v", meds)
	}
	if meds[0].AnalysisID != resp.AnalysisID || meds[0].PatientID != "patient-1" {
		t.Fatalf("expected recommendation linked to analysis, got %+v", meds[0])
	}
	if len(store.medications) != 1 {
		t.Fatalf("expected persisted medications, got %d", len(store.medications))
	}
}

func TestRecommendForAnalysisUnknownID(t *testing.T) {
	svc := newTestService(newFakeStore())

	if _, err := svc.RecommendForAnalysis(context.Background(), "missing"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestChatHistoryAndStoredMedications(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	svc.ProcessMessage(context.Background(), "patient-1", "patient", "hello")
	svc.ProcessMessage(context.Background(), "patient-2", "patient", "hi")

	turns, err := svc.ChatHistory(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 1 || turns[0].UserID != "patient-1" {
		t.Fatalf("expected patient-1's single turn, got %+v", turns)
	}

	resp, err := svc.AnalyzeSymptoms(context.Background(), "patient-1", []string{"headache"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.RecommendForAnalysis(context.Background(), resp.AnalysisID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meds, err := svc.MedicationsFor(context.Background(), resp.AnalysisID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Ibuprofen" {
		t.Fatalf("expected stored Ibuprofen recommendation, got %+v", meds)
	}
}

func TestPreventiveCarePersistsAdvice(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	advice, err := svc.PreventiveCare(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(advice) != 5 || len(store.advice) != 5 {
		t.Fatalf("expected 5 advice rows, got %d returned %d stored", len(advice), len(store.advice))
	}
	for _, item := range advice {
		if item.PatientID != "patient-1" {
			t.Fatalf("expected advice bound to patient, got %+v", item)
		}
	}
}
