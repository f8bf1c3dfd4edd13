package assistant

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
	router.HandleFunc("/chat", h.handleChat).Methods(http.MethodPost)
	router.HandleFunc("/chat/{userId}/history", h.handleChatHistory).Methods(http.MethodGet)
	router.HandleFunc("/intents", h.handleIntents).Methods(http.MethodGet)
	router.HandleFunc("/symptoms/analyze", h.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/symptoms/{id}/medications", h.handleMedications).Methods(http.MethodPost)
	router.HandleFunc("/symptoms/{id}/medications", h.handleListMedications).Methods(http.MethodGet)
	router.HandleFunc("/patients/{patientId}/analyses", h.handleRecentAnalyses).Methods(http.MethodGet)
	router.HandleFunc("/patients/{patientId}/preventive-care", h.handlePreventiveCare).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid chat payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.service.ProcessMessage(r.Context(), req.UserID, req.UserType, req.Message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleIntents serves the canonical keyword table the browser widget
// mirrors for its stand-alone demo mode.
func (h *HTTPHandler) handleIntents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.IntentTable())
}

func (h *HTTPHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.SymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" {
		http.Error(w, "patient_id is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AnalyzeSymptoms(r.Context(), req.PatientID, req.Symptoms)
	if err != nil {
		logger.Log.WithError(err).Error("failed to analyze symptoms")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleMedications(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	medications, err := h.service.RecommendForAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAnalysisNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to recommend medications")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(medications)
}

func (h *HTTPHandler) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	turns, err := h.service.ChatHistory(r.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load chat history")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(turns)
}

func (h *HTTPHandler) handleListMedications(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	medications, err := h.service.MedicationsFor(r.Context(), id)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load medication recommendations")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(medications)
}

func (h *HTTPHandler) handleRecentAnalyses(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	analyses, err := h.service.RecentAnalyses(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to load symptom analyses")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyses)
}

func (h *HTTPHandler) handlePreventiveCare(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	advice, err := h.service.PreventiveCare(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to generate preventive care advice")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(advice)
}
