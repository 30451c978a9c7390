package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
)

// ApplicationHandler handles the job application tracker.
type ApplicationHandler struct {
	Service *services.ApplicationService
}

// NewApplicationHandler creates a new instance of ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Service: appService}
}

// CreateApplicationHandler records a new application.
func (h *ApplicationHandler) CreateApplicationHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var app models.JobApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateApplication(r.Context(), ownerID, app)
	if err != nil {
		respondError(w, err, "Failed to create application")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetApplicationsHandler lists the user's applications.
func (h *ApplicationHandler) GetApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	apps, err := h.Service.GetApplications(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch applications")
		return
	}
	respondJSON(w, http.StatusOK, apps)
}

// UpdateApplicationStatusHandler moves an application through the pipeline.
func (h *ApplicationHandler) UpdateApplicationStatusHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.UpdateApplicationStatus(r.Context(), ownerID, appID, body.Status); err != nil {
		respondError(w, err, "Failed to update application")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Application updated"})
}

// DeleteApplicationHandler removes an application record.
func (h *ApplicationHandler) DeleteApplicationHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteApplication(r.Context(), ownerID, appID); err != nil {
		respondError(w, err, "Failed to delete application")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}
