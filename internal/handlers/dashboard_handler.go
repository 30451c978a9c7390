package handlers

import (
	"net/http"
	"strconv"

	"github.com/SKrishna-7/stratify/internal/services"
)

// DashboardHandler serves the aggregated home-screen payload.
type DashboardHandler struct {
	Service         *services.DashboardService
	ActivityService *services.ActivityService
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService, activityService *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{
		Service:         dashboardService,
		ActivityService: activityService,
	}
}

// GetDashboardHandler returns the full dashboard in one response.
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Service.GetDashboard(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to build dashboard")
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// GetHeatmapHandler returns per-day activity counts. An optional ?days= query
// changes the trailing window.
func (h *DashboardHandler) GetHeatmapHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	days := 90
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	heatmap, err := h.ActivityService.GetHeatmap(r.Context(), ownerID, days)
	if err != nil {
		respondError(w, err, "Failed to fetch heatmap")
		return
	}
	respondJSON(w, http.StatusOK, heatmap)
}
