package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseService manages the course/module/topic hierarchy. Topic completion
// changes flow into the goal engine so tracking goals never go stale.
type CourseService struct {
	repo  repository.CourseRepository
	goals *GoalService
}

// NewCourseService creates a new instance of CourseService.
func NewCourseService(repo repository.CourseRepository, goals *GoalService) *CourseService {
	return &CourseService{
		repo:  repo,
		goals: goals,
	}
}

// CourseSummary is a course with its derived progress figures, as listed on
// the courses page and the dashboard.
type CourseSummary struct {
	models.Course
	Progress          int    `json:"progress"`
	TotalModules      int    `json:"total_modules"`
	CompletedModules  int    `json:"completed_modules"`
	CurrentModuleName string `json:"current_module_name"`
}

// CreateCourse persists a new, empty course.
func (s *CourseService) CreateCourse(ctx context.Context, ownerID primitive.ObjectID, title, description string, startDate, endDate time.Time) (*models.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: course title is required", models.ErrInvalidInput)
	}

	course := &models.Course{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Icon:        "📚",
		Color:       "bg-blue-500",
		StartDate:   startDate,
		EndDate:     endDate,
		Modules:     []models.Module{},
	}

	created, err := s.repo.Insert(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %v", err)
	}

	logger.Log.WithField("course_id", created.ID.Hex()).Info("Course created in service layer")
	return created, nil
}

// GetCourse fetches one owned course with its full hierarchy.
func (s *CourseService) GetCourse(ctx context.Context, ownerID, courseID primitive.ObjectID) (*models.Course, error) {
	return s.repo.FindByID(ctx, courseID, ownerID)
}

// GetCourseSummaries lists the owner's courses with computed progress.
func (s *CourseService) GetCourseSummaries(ctx context.Context, ownerID primitive.ObjectID) ([]CourseSummary, error) {
	courses, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %v", err)
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, summarizeCourse(c))
	}
	return summaries, nil
}

// DeleteCourse removes a course and its embedded hierarchy.
func (s *CourseService) DeleteCourse(ctx context.Context, ownerID, courseID primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, courseID, ownerID); err != nil {
		return fmt.Errorf("failed to delete course: %v", err)
	}
	return nil
}

// AddModule appends a pending module to the course.
func (s *CourseService) AddModule(ctx context.Context, ownerID, courseID primitive.ObjectID, title string) (*models.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: module title is required", models.ErrInvalidInput)
	}

	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	course.Modules = append(course.Modules, models.Module{
		ID:     primitive.NewObjectID(),
		Title:  title,
		Status: models.ModuleStatusPending,
		Topics: []models.Topic{},
	})

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to add module: %v", err)
	}
	return course, nil
}

// RenameModule changes a module title.
func (s *CourseService) RenameModule(ctx context.Context, ownerID, courseID, moduleID primitive.ObjectID, title string) (*models.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: module title is required", models.ErrInvalidInput)
	}

	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	module := course.FindModule(moduleID)
	if module == nil {
		return nil, models.ErrNotFound
	}
	module.Title = title

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to rename module: %v", err)
	}
	return course, nil
}

// UpdateModuleStatus moves a module between pending/in-progress/completed.
func (s *CourseService) UpdateModuleStatus(ctx context.Context, ownerID, courseID, moduleID primitive.ObjectID, status string) (*models.Course, error) {
	if !models.AllowedModuleStatuses[status] {
		return nil, fmt.Errorf("%w: unknown module status %q", models.ErrInvalidInput, status)
	}

	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	module := course.FindModule(moduleID)
	if module == nil {
		return nil, models.ErrNotFound
	}
	module.Status = status

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update module status: %v", err)
	}
	return course, nil
}

// DeleteModule removes a module and re-syncs tracking goals, since the
// course's completable topic set just changed.
func (s *CourseService) DeleteModule(ctx context.Context, ownerID, courseID, moduleID primitive.ObjectID) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	kept := course.Modules[:0]
	found := false
	for _, m := range course.Modules {
		if m.ID == moduleID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil, models.ErrNotFound
	}
	course.Modules = kept

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to delete module: %v", err)
	}

	if err := s.goals.SyncGoalsForCourse(ctx, ownerID, courseID); err != nil {
		logger.Log.WithError(err).WithField("course_id", courseID.Hex()).Warn("Goal sync after module delete failed")
	}
	return course, nil
}

// AddTopic appends a topic to a module.
func (s *CourseService) AddTopic(ctx context.Context, ownerID, courseID, moduleID primitive.ObjectID, title, duration string) (*models.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: topic title is required", models.ErrInvalidInput)
	}
	if duration == "" {
		duration = "15 min"
	}

	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	module := course.FindModule(moduleID)
	if module == nil {
		return nil, models.ErrNotFound
	}
	module.Topics = append(module.Topics, models.Topic{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Duration: duration,
	})

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to add topic: %v", err)
	}
	return course, nil
}

// ToggleTopic marks a topic complete or incomplete and then re-syncs every
// goal tracking this course. The toggle itself is committed first; a failed
// sync is reported and safe to retry because sync always recomputes from the
// stored hierarchy.
func (s *CourseService) ToggleTopic(ctx context.Context, ownerID, courseID, topicID primitive.ObjectID, isCompleted bool) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	_, topic := course.FindTopic(topicID)
	if topic == nil {
		return nil, models.ErrNotFound
	}

	topic.IsCompleted = isCompleted
	if isCompleted {
		now := time.Now()
		topic.CompletedAt = &now
	} else {
		topic.CompletedAt = nil
	}

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to toggle topic: %v", err)
	}

	if err := s.goals.SyncGoalsForCourse(ctx, ownerID, courseID); err != nil {
		return nil, fmt.Errorf("topic saved but goal sync failed: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"topic_id":  topicID.Hex(),
		"completed": isCompleted,
	}).Info("Topic toggled and goals synced")
	return course, nil
}

// ToggleTopicFocus flags a topic for the focus queue.
func (s *CourseService) ToggleTopicFocus(ctx context.Context, ownerID, courseID, topicID primitive.ObjectID, isFocus bool) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	_, topic := course.FindTopic(topicID)
	if topic == nil {
		return nil, models.ErrNotFound
	}
	topic.IsFocus = isFocus

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to toggle topic focus: %v", err)
	}
	return course, nil
}

// SaveTopicNote stores the note text for a topic (auto-save from the editor).
func (s *CourseService) SaveTopicNote(ctx context.Context, ownerID, courseID, topicID primitive.ObjectID, note string) error {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return err
	}

	_, topic := course.FindTopic(topicID)
	if topic == nil {
		return models.ErrNotFound
	}
	topic.Note = note

	return s.repo.Replace(ctx, course)
}

// SaveTopicResource attaches a learning resource link to a topic.
func (s *CourseService) SaveTopicResource(ctx context.Context, ownerID, courseID, topicID primitive.ObjectID, url, mode string) error {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return err
	}

	_, topic := course.FindTopic(topicID)
	if topic == nil {
		return models.ErrNotFound
	}
	topic.ResourceURL = url
	topic.ResourceMode = mode

	return s.repo.Replace(ctx, course)
}

// DeleteTopic removes a topic and re-syncs tracking goals.
func (s *CourseService) DeleteTopic(ctx context.Context, ownerID, courseID, topicID primitive.ObjectID) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	module, topic := course.FindTopic(topicID)
	if topic == nil {
		return nil, models.ErrNotFound
	}

	kept := module.Topics[:0]
	for _, t := range module.Topics {
		if t.ID == topicID {
			continue
		}
		kept = append(kept, t)
	}
	module.Topics = kept

	if err := s.repo.Replace(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to delete topic: %v", err)
	}

	if err := s.goals.SyncGoalsForCourse(ctx, ownerID, courseID); err != nil {
		logger.Log.WithError(err).WithField("course_id", courseID.Hex()).Warn("Goal sync after topic delete failed")
	}
	return course, nil
}

// summarizeCourse derives progress figures from the embedded hierarchy.
func summarizeCourse(course models.Course) CourseSummary {
	totalTopics := 0
	completedTopics := 0
	completedModules := 0

	for _, m := range course.Modules {
		totalTopics += len(m.Topics)
		for _, t := range m.Topics {
			if t.IsCompleted {
				completedTopics++
			}
		}
		if m.Status == models.ModuleStatusCompleted {
			completedModules++
		}
	}

	progress := 0
	if totalTopics > 0 {
		progress = int(math.Round(float64(completedTopics) / float64(totalTopics) * 100))
	}

	return CourseSummary{
		Course:            course,
		Progress:          progress,
		TotalModules:      len(course.Modules),
		CompletedModules:  completedModules,
		CurrentModuleName: currentModuleName(course.Modules),
	}
}

// currentModuleName picks the module to show as "up next": in-progress wins,
// then pending, then the first module, then a default label.
func currentModuleName(modules []models.Module) string {
	for _, m := range modules {
		if m.Status == models.ModuleStatusInProgress {
			return m.Title
		}
	}
	for _, m := range modules {
		if m.Status == models.ModuleStatusPending {
			return m.Title
		}
	}
	if len(modules) > 0 {
		return modules[0].Title
	}
	return "Course Introduction"
}
