package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// GoalHandler handles HTTP requests related to goals.
type GoalHandler struct {
	Service         *services.GoalService
	ActivityService *services.ActivityService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(goalService *services.GoalService, activityService *services.ActivityService) *GoalHandler {
	return &GoalHandler{
		Service:         goalService,
		ActivityService: activityService,
	}
}

// CreateGoalHandler handles the creation of a new goal.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var input services.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	goal, err := h.Service.CreateGoal(r.Context(), ownerID, input)
	if err != nil {
		respondError(w, err, "Failed to create goal")
		return
	}

	h.ActivityService.LogActivity(r.Context(), ownerID, "goal_created", &goal.ID, fmt.Sprintf("Created goal: %s", goal.Title))

	logrus.WithFields(logrus.Fields{
		"userID": ownerID.Hex(),
		"goalID": goal.ID.Hex(),
	}).Info("Goal successfully created")
	respondJSON(w, http.StatusCreated, goal)
}

// GetGoalsHandler lists all goals of the authenticated user.
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	goals, err := h.Service.GetGoals(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch goals")
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// GetImminentGoalHandler returns the single goal the dashboard surfaces.
// Responds 204 when the user has no goals at all.
func (h *GoalHandler) GetImminentGoalHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	goal, err := h.Service.GetImminentGoal(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to select imminent goal")
		return
	}
	if goal == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GetGoalHandler handles fetching a single goal by its ID.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), ownerID, goalID)
	if err != nil {
		respondError(w, err, "Failed to fetch goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GetGoalForecastHandler projects the goal's completion. An optional
// ?velocity= query overrides the default units-per-week rate.
func (h *GoalHandler) GetGoalForecastHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	velocity := services.DefaultVelocityPerWeek
	if raw := r.URL.Query().Get("velocity"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Invalid velocity", http.StatusBadRequest)
			return
		}
		velocity = parsed
	}

	goal, err := h.Service.GetGoal(r.Context(), ownerID, goalID)
	if err != nil {
		respondError(w, err, "Failed to fetch goal")
		return
	}

	forecast, err := services.ForecastGoal(goal, velocity)
	if err != nil {
		respondError(w, err, "Failed to forecast goal")
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

// UpdateGoalProgressHandler manually advances a custom goal.
func (h *GoalHandler) UpdateGoalProgressHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		Current int `json:"current"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	goal, err := h.Service.UpdateGoalProgress(r.Context(), ownerID, goalID, body.Current)
	if err != nil {
		respondError(w, err, "Failed to update goal progress")
		return
	}

	if goal.IsDone {
		h.ActivityService.LogActivity(r.Context(), ownerID, "goal_completed", &goal.ID, fmt.Sprintf("Completed goal: %s", goal.Title))
	}
	respondJSON(w, http.StatusOK, goal)
}

// ToggleGoalHandler flips the done flag of a goal.
func (h *GoalHandler) ToggleGoalHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	goal, err := h.Service.ToggleGoalDone(r.Context(), ownerID, goalID)
	if err != nil {
		respondError(w, err, "Failed to toggle goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoalHandler removes a goal.
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	goalID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteGoal(r.Context(), ownerID, goalID); err != nil {
		respondError(w, err, "Failed to delete goal")
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID": ownerID.Hex(),
		"goalID": goalID.Hex(),
	}).Info("Goal successfully deleted")
	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

// SyncCourseGoalsHandler recomputes every goal tracking the given course.
// Normally sync runs automatically on topic changes; this endpoint lets the
// client force it.
func (h *GoalHandler) SyncCourseGoalsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	courseID, ok := pathID(w, mux.Vars(r), "courseId")
	if !ok {
		return
	}

	if err := h.Service.SyncGoalsForCourse(r.Context(), ownerID, courseID); err != nil {
		respondError(w, err, "Failed to sync goals")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Goals synced"})
}
