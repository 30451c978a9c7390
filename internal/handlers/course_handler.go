package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// CourseHandler handles HTTP requests for the course hierarchy.
type CourseHandler struct {
	Service         *services.CourseService
	ActivityService *services.ActivityService
}

// NewCourseHandler creates a new instance of CourseHandler.
func NewCourseHandler(courseService *services.CourseService, activityService *services.ActivityService) *CourseHandler {
	return &CourseHandler{
		Service:         courseService,
		ActivityService: activityService,
	}
}

// CreateCourseHandler handles the creation of a new course.
func (h *CourseHandler) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var body struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		StartDate   time.Time `json:"start_date"`
		EndDate     time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during course creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.CreateCourse(r.Context(), ownerID, body.Title, body.Description, body.StartDate, body.EndDate)
	if err != nil {
		respondError(w, err, "Failed to create course")
		return
	}

	h.ActivityService.LogActivity(r.Context(), ownerID, "course_created", &course.ID, fmt.Sprintf("Created course: %s", course.Title))
	respondJSON(w, http.StatusCreated, course)
}

// GetCoursesHandler lists the user's courses with progress summaries.
func (h *CourseHandler) GetCoursesHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	summaries, err := h.Service.GetCourseSummaries(r.Context(), ownerID)
	if err != nil {
		respondError(w, err, "Failed to fetch courses")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetCourseHandler fetches one course with its full hierarchy.
func (h *CourseHandler) GetCourseHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	courseID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	course, err := h.Service.GetCourse(r.Context(), ownerID, courseID)
	if err != nil {
		respondError(w, err, "Failed to fetch course")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// DeleteCourseHandler removes a course.
func (h *CourseHandler) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	courseID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteCourse(r.Context(), ownerID, courseID); err != nil {
		respondError(w, err, "Failed to delete course")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

// AddModuleHandler appends a module to a course.
func (h *CourseHandler) AddModuleHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	courseID, ok := pathID(w, mux.Vars(r), "id")
	if !ok {
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.AddModule(r.Context(), ownerID, courseID, body.Title)
	if err != nil {
		respondError(w, err, "Failed to add module")
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

// UpdateModuleHandler renames a module or changes its status.
func (h *CourseHandler) UpdateModuleHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(w, vars, "moduleId")
	if !ok {
		return
	}

	var body struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var course interface{}
	var err error
	switch {
	case body.Status != "":
		course, err = h.Service.UpdateModuleStatus(r.Context(), ownerID, courseID, moduleID, body.Status)
	case body.Title != "":
		course, err = h.Service.RenameModule(r.Context(), ownerID, courseID, moduleID, body.Title)
	default:
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err, "Failed to update module")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// DeleteModuleHandler removes a module and re-syncs tracking goals.
func (h *CourseHandler) DeleteModuleHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(w, vars, "moduleId")
	if !ok {
		return
	}

	course, err := h.Service.DeleteModule(r.Context(), ownerID, courseID, moduleID)
	if err != nil {
		respondError(w, err, "Failed to delete module")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// AddTopicHandler appends a topic to a module.
func (h *CourseHandler) AddTopicHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(w, vars, "moduleId")
	if !ok {
		return
	}

	var body struct {
		Title    string `json:"title"`
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.AddTopic(r.Context(), ownerID, courseID, moduleID, body.Title, body.Duration)
	if err != nil {
		respondError(w, err, "Failed to add topic")
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

// ToggleTopicHandler marks a topic complete or incomplete. This is the entry
// point that triggers goal synchronization.
func (h *CourseHandler) ToggleTopicHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(w, vars, "topicId")
	if !ok {
		return
	}

	var body struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.ToggleTopic(r.Context(), ownerID, courseID, topicID, body.IsCompleted)
	if err != nil {
		respondError(w, err, "Failed to toggle topic")
		return
	}

	if body.IsCompleted {
		h.ActivityService.LogActivity(r.Context(), ownerID, "topic_completed", &topicID, "")
	}

	logrus.WithFields(logrus.Fields{
		"userID":  ownerID.Hex(),
		"topicID": topicID.Hex(),
	}).Info("Topic toggled")
	respondJSON(w, http.StatusOK, course)
}

// ToggleTopicFocusHandler flags a topic for the focus queue.
func (h *CourseHandler) ToggleTopicFocusHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(w, vars, "topicId")
	if !ok {
		return
	}

	var body struct {
		IsFocus bool `json:"is_focus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	course, err := h.Service.ToggleTopicFocus(r.Context(), ownerID, courseID, topicID, body.IsFocus)
	if err != nil {
		respondError(w, err, "Failed to toggle topic focus")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// SaveTopicNoteHandler stores the note text for a topic.
func (h *CourseHandler) SaveTopicNoteHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(w, vars, "topicId")
	if !ok {
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SaveTopicNote(r.Context(), ownerID, courseID, topicID, body.Note); err != nil {
		respondError(w, err, "Failed to save note")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Note saved"})
}

// SaveTopicResourceHandler attaches a resource link to a topic.
func (h *CourseHandler) SaveTopicResourceHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(w, vars, "topicId")
	if !ok {
		return
	}

	var body struct {
		URL  string `json:"url"`
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SaveTopicResource(r.Context(), ownerID, courseID, topicID, body.URL, body.Mode); err != nil {
		respondError(w, err, "Failed to save resource")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Resource saved"})
}

// DeleteTopicHandler removes a topic and re-syncs tracking goals.
func (h *CourseHandler) DeleteTopicHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	courseID, ok := pathID(w, vars, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(w, vars, "topicId")
	if !ok {
		return
	}

	course, err := h.Service.DeleteTopic(r.Context(), ownerID, courseID, topicID)
	if err != nil {
		respondError(w, err, "Failed to delete topic")
		return
	}
	respondJSON(w, http.StatusOK, course)
}
