package trends

import (
	"encoding/json"
	"net/http"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/trends/metrics", h.handleRecord).Methods(http.MethodPost)
	router.HandleFunc("/trends/patients/{patientId}/metrics", h.handleRecent).Methods(http.MethodGet)
	router.HandleFunc("/trends/patients/{patientId}/recommendations", h.handleRecommendations).Methods(http.MethodGet)
}

type snapshotRequest struct {
	PatientID string  `json:"patient_id"`
	Metric    string  `json:"metric_name"`
	Value     float64 `json:"metric_value"`
	Unit      string  `json:"unit"`
}

func (h *HTTPHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" || req.Metric == "" {
		http.Error(w, "patient_id and metric_name are required", http.StatusBadRequest)
		return
	}

	metric, err := h.service.RecordSnapshot(r.Context(), req.PatientID, req.Metric, req.Value, req.Unit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to record trend snapshot")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(metric)
}

func (h *HTTPHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	metrics, err := h.service.Recent(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load trend metrics")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

func (h *HTTPHandler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	recs, err := h.service.Recommendations(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load lifestyle recommendations")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recs)
}
