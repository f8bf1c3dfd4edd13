// Package dashboard serves the doctor-facing per-patient AI summary,
// aggregating the latest output of the assistant, risk, monitoring and
// trend tables in one read.
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/drcares-ai/platform/pkg/assistant"
	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/monitoring"
	"github.com/drcares-ai/platform/pkg/risk"
	"github.com/drcares-ai/platform/pkg/trends"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

type AlertCounts struct {
	Alerts   int64 `json:"alerts"`
	Warnings int64 `json:"warnings"`
}

type PatientSummary struct {
	PatientID   string                      `json:"patient_id"`
	Analyses    []assistant.SymptomAnalysis `json:"recent_analyses"`
	Predictions []risk.Prediction           `json:"recent_predictions"`
	Monitoring  []monitoring.Record         `json:"recent_monitoring"`
	Trends      []trends.Metric             `json:"recent_trends"`
	Alerts      AlertCounts                 `json:"alert_counts"`
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/dashboard/patients/{patientId}/summary", h.handleSummary).Methods(http.MethodGet)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]
	ctx := r.Context()

	summary := PatientSummary{PatientID: patientID}

	if err := h.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Limit(5).
		Find(&summary.Analyses).Error; err != nil {
		h.fail(w, err, "failed to load symptom analyses")
		return
	}

	if err := h.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("predicted_at DESC").
		Limit(5).
		Find(&summary.Predictions).Error; err != nil {
		h.fail(w, err, "failed to load risk predictions")
		return
	}

	if err := h.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("measured_at DESC").
		Limit(10).
		Find(&summary.Monitoring).Error; err != nil {
		h.fail(w, err, "failed to load monitoring records")
		return
	}

	if err := h.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at DESC").
		Limit(10).
		Find(&summary.Trends).Error; err != nil {
		h.fail(w, err, "failed to load trend metrics")
		return
	}

	if err := h.db.WithContext(ctx).Raw(`
		SELECT
			SUM(CASE WHEN status = 'Alert' THEN 1 ELSE 0 END) AS alerts,
			SUM(CASE WHEN status = 'Warning' THEN 1 ELSE 0 END) AS warnings
		FROM ai_disease_monitoring
		WHERE patient_id = ? AND status <> 'Resolved'
	`, patientID).Scan(&summary.Alerts).Error; err != nil {
		h.fail(w, err, "failed to count alerts")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (h *Handler) fail(w http.ResponseWriter, err error, msg string) {
	logger.Log.WithError(err).Error(msg)
	http.Error(w, "failed to build patient summary", http.StatusInternalServerError)
}
