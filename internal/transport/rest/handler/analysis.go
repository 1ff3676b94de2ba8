package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"readypulse/internal/service"
	"readypulse/internal/transport/rest/middleware"
)

// AnalysisHandler handles scoring and analysis endpoints
type AnalysisHandler struct {
	scoringSvc  *service.ScoringService
	analysisSvc *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(scoringSvc *service.ScoringService, analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		scoringSvc:  scoringSvc,
		analysisSvc: analysisSvc,
	}
}

// StartScoring handles POST /v1/surveys/{surveyId}/score: dispatches
// the survey's pending responses to the external scorer asynchronously
func (h *AnalysisHandler) StartScoring(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	go func() {
		// Detached from the request: scoring outlives the HTTP call
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := h.scoringSvc.ScoreSurvey(ctx, surveyID); err != nil {
			log.Printf("Scoring batch for survey %s failed: %v", surveyID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scoring"})
}

// GetScoringProgress handles GET /v1/surveys/{surveyId}/score
func (h *AnalysisHandler) GetScoringProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.scoringSvc.Progress(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// RunAnalysis handles POST /v1/surveys/{surveyId}/analysis: runs the
// forces rollup over the scored batch and stores the snapshot
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.analysisSvc.AnalyzeSurvey(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// GetAnalysis handles GET /v1/surveys/{surveyId}/analysis
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.analysisSvc.GetAnalysis(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if analysis == nil {
		writeError(w, http.StatusNotFound, "no analysis for this survey yet")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// Compare handles GET /v1/analyses/compare?base={id}&target={id}
func (h *AnalysisHandler) Compare(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	target := r.URL.Query().Get("target")
	if base == "" || target == "" {
		writeError(w, http.StatusBadRequest, "base and target survey ids are required")
		return
	}

	comparison, err := h.analysisSvc.Compare(r.Context(), base, target)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
