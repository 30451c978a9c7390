package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
)

// TaskHandler handles the kanban board endpoints.
type TaskHandler struct {
	Service *services.TaskService
}

// NewTaskHandler creates a new instance of TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: taskService}
}

// GetBoardHandler returns every column with the user's tasks.
func (h *TaskHandler) GetBoardHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	board, err := h.Service.GetBoard(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch board")
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// CreateTaskHandler adds a card to a column.
func (h *TaskHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var body struct {
		ColumnID string `json:"column_id"`
		Content  string `json:"content"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	columnID, ok := bodyID(w, body.ColumnID, "column id")
	if !ok {
		return
	}

	task, err := h.Service.CreateTask(r.Context(), ownerID, columnID, body.Content, body.Priority)
	if err != nil {
		respondError(w, err, "Failed to create task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// MoveTaskHandler drags a card to another column.
func (h *TaskHandler) MoveTaskHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		ColumnID string `json:"column_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	columnID, ok := bodyID(w, body.ColumnID, "column id")
	if !ok {
		return
	}

	if err := h.Service.MoveTask(r.Context(), ownerID, taskID, columnID); err != nil {
		respondError(w, err, "Failed to move task")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task moved"})
}

// UpdateTaskPriorityHandler changes a card's priority.
func (h *TaskHandler) UpdateTaskPriorityHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.UpdateTaskPriority(r.Context(), ownerID, taskID, body.Priority); err != nil {
		respondError(w, err, "Failed to update priority")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Priority updated"})
}

// DeleteTaskHandler removes a card.
func (h *TaskHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteTask(r.Context(), ownerID, taskID); err != nil {
		respondError(w, err, "Failed to delete task")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
