package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
)

// EventHandler handles the daily planner endpoints.
type EventHandler struct {
	Service *services.EventService
}

// NewEventHandler creates a new instance of EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{Service: eventService}
}

// CreateEventHandler adds a planner entry.
func (h *EventHandler) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateEvent(r.Context(), ownerID, event)
	if err != nil {
		respondError(w, err, "Failed to create event")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetEventsHandler lists the user's planner entries.
func (h *EventHandler) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	events, err := h.Service.GetEvents(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// ToggleEventHandler marks a planner entry done or not done.
func (h *EventHandler) ToggleEventHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		IsDone bool `json:"is_done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.ToggleEvent(r.Context(), ownerID, eventID, body.IsDone); err != nil {
		respondError(w, err, "Failed to toggle event")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Event updated"})
}

// DeleteEventHandler removes a planner entry.
func (h *EventHandler) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteEvent(r.Context(), ownerID, eventID); err != nil {
		respondError(w, err, "Failed to delete event")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}
