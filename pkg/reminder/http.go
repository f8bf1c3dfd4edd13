package reminder

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/reminders/patients/{patientId}/due", h.handleDue).Methods(http.MethodGet)
	router.HandleFunc("/reminders/patients/{patientId}/pending", h.handlePending).Methods(http.MethodGet)
	router.HandleFunc("/reminders/appointments/{id}/plan", h.handlePlan).Methods(http.MethodPost)
	router.HandleFunc("/reminders/run", h.handleRun).Methods(http.MethodPost)
}

// handleDue marks the returned reminders as sent; callers get each
// reminder exactly once.
func (h *HTTPHandler) handleDue(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	reminders, err := h.service.FetchDue(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to fetch due reminders")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

func (h *HTTPHandler) handlePending(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	reminders, err := h.service.Pending(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list pending reminders")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

func (h *HTTPHandler) handlePlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.service.PlanReminders(r.Context(), id)
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrAppointmentPast):
		http.Error(w, "appointment already past", http.StatusConflict)
	case err != nil:
		logger.Log.WithError(err).Error("failed to plan reminders")
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusAccepted)
	}
}

func (h *HTTPHandler) handleRun(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RunOnce(r.Context()); err != nil {
		logger.Log.WithError(err).Error("reminder planning run failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
