package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/drcares-ai/platform/pkg/common/models"
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
	router.HandleFunc("/monitoring/observations", h.handleRecord).Methods(http.MethodPost)
	router.HandleFunc("/monitoring/patients/{patientId}/history", h.handleHistory).Methods(http.MethodGet)
	router.HandleFunc("/monitoring/patients/{patientId}/alerts", h.handleAlerts).Methods(http.MethodGet)
	router.HandleFunc("/monitoring/alerts/{id}/resolve", h.handleResolve).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleRecord(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.ObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid observation payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" || req.VitalSigns == "" {
		http.Error(w, "patient_id and vital_signs are required", http.StatusBadRequest)
		return
	}

	record, result, err := h.service.RecordObservation(r.Context(), req.PatientID, req.DiseaseName, req.VitalSigns)
	if err != nil {
		logger.Log.WithError(err).Error("failed to record observation")
		if errors.Is(err, ErrAlertNotPersisted) {
			// The alert was computed but not saved; the caller must not
			// treat this as "no alert".
			http.Error(w, "alert detected but could not be saved, try again", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := models.ObservationResponse{
		ID:        record.ID,
		Status:    result.Status.String(),
		Triggered: result.Triggered,
		Reason:    result.Reason,
		Timestamp: record.MeasuredAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	records, err := h.service.History(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load monitoring history")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *HTTPHandler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	records, err := h.service.ActiveAlerts(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load active alerts")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *HTTPHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.ResolveAlert(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to resolve alert")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
