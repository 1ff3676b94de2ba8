package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"readypulse/internal/model"
	"readypulse/internal/service"
)

// OrganizationHandler handles organization endpoints
type OrganizationHandler struct {
	orgSvc *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgSvc *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgSvc: orgSvc}
}

// Create handles POST /v1/organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var org model.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orgSvc.Create(r.Context(), &org); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// List handles GET /v1/organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"organizations": orgs})
}

// Get handles GET /v1/organizations/{orgId}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgSvc.Get(r.Context(), mux.Vars(r)["orgId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if org == nil {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// Update handles PUT /v1/organizations/{orgId}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var org model.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	org.ID = mux.Vars(r)["orgId"]

	if err := h.orgSvc.Update(r.Context(), &org); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// Delete handles DELETE /v1/organizations/{orgId}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orgSvc.Delete(r.Context(), mux.Vars(r)["orgId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
