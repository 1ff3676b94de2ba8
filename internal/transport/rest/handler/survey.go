package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"readypulse/internal/model"
	"readypulse/internal/service"
	"readypulse/internal/transport/rest/middleware"
)

// SurveyHandler handles survey and response endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	OrganizationID string                 `json:"organizationId"`
	Title          string                 `json:"title"`
	Intent         string                 `json:"intent"`
	Settings       model.SurveySettings   `json:"settings"`
	Questions      []model.SurveyQuestion `json:"questions"`
}

// SubmitResponseRequest is the request body for submitting a response
type SubmitResponseRequest struct {
	QuestionKey  string `json:"questionKey"`
	RespondentID string `json:"respondentId,omitempty"`
	Text         string `json:"text"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		OrganizationID: req.OrganizationID,
		HostID:         hostID,
		Title:          req.Title,
		Intent:         req.Intent,
		Settings:       req.Settings,
		Questions:      req.Questions,
	}

	if err := h.surveySvc.Create(r.Context(), survey); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// List handles GET /v1/surveys (all surveys for the calling host)
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// Allow filtering by organization
	if orgID := r.URL.Query().Get("organizationId"); orgID != "" {
		surveys, err := h.surveySvc.ListByOrganization(r.Context(), orgID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
		return
	}

	surveys, err := h.surveySvc.ListByHost(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.Get(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if survey == nil {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		ID:        mux.Vars(r)["surveyId"],
		Title:     req.Title,
		Intent:    req.Intent,
		Settings:  req.Settings,
		Questions: req.Questions,
	}

	if err := h.surveySvc.Update(r.Context(), survey); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Open handles POST /v1/surveys/{surveyId}/open
func (h *SurveyHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Open(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(model.SurveyStatusOpen)})
}

// Close handles POST /v1/surveys/{surveyId}/close
func (h *SurveyHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.surveySvc.Close(r.Context(), mux.Vars(r)["surveyId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(model.SurveyStatusClosed)})
}

// SubmitResponse handles POST /v1/surveys/{surveyId}/responses (public,
// respondents are anonymous)
func (h *SurveyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := &model.SurveyResponse{
		SurveyID:     mux.Vars(r)["surveyId"],
		QuestionKey:  req.QuestionKey,
		RespondentID: req.RespondentID,
		Text:         req.Text,
	}

	err := h.surveySvc.SubmitResponse(r.Context(), response)
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, service.ErrSurveyClosed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// ListResponses handles GET /v1/surveys/{surveyId}/responses
func (h *SurveyHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.surveySvc.ListResponses(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}
