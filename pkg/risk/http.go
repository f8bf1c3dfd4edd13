package risk

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/drcares-ai/platform/pkg/common/logger"
	"github.com/gorilla/mux"
)

type PredictionStore interface {
	SavePredictions(ctx context.Context, predictions []Prediction) error
	RecentPredictions(ctx context.Context, patientID string, limit int) ([]Prediction, error)
}

type HTTPHandler struct {
	aggregator *Aggregator
	store      PredictionStore
}

func NewHTTPHandler(aggregator *Aggregator, store PredictionStore) *HTTPHandler {
	return &HTTPHandler{aggregator: aggregator, store: store}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/risk/patients/{patientId}/priority", h.handlePriority).Methods(http.MethodGet)
	router.HandleFunc("/risk/patients/{patientId}/predictions", h.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/risk/patients/{patientId}/predictions", h.handleList).Methods(http.MethodGet)
}

func (h *HTTPHandler) handlePriority(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	priority, err := h.aggregator.ComputePriority(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to compute priority")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"patient_id": patientID, "priority": string(priority)})
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var req struct {
		DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	predictions := PredictRisks(patientID, dob, time.Now())
	if err := h.store.SavePredictions(r.Context(), predictions); err != nil {
		logger.Log.WithError(err).Error("failed to save risk predictions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(predictions)
}

func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	predictions, err := h.store.RecentPredictions(r.Context(), patientID, 5)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load risk predictions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(predictions)
}
