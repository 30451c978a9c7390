package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalService owns the goal lifecycle: target calculation at creation time
// and progress synchronization against the course hierarchy afterwards.
type GoalService struct {
	repo       repository.GoalRepository
	courseRepo repository.CourseRepository
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(repo repository.GoalRepository, courseRepo repository.CourseRepository) *GoalService {
	return &GoalService{
		repo:       repo,
		courseRepo: courseRepo,
	}
}

// CreateGoalInput carries the caller-supplied fields for a new goal.
type CreateGoalInput struct {
	Title        string              `json:"title"`
	Type         string              `json:"type"`
	Category     string              `json:"category"`
	TargetID     *primitive.ObjectID `json:"target_id,omitempty"`
	Deadline     time.Time           `json:"deadline,omitempty"`
	CustomTarget int                 `json:"custom_target,omitempty"`
	Color        string              `json:"color,omitempty"`
}

// CreateGoal validates the input, derives the target from the tracked
// hierarchy for COURSE/MODULE goals, and persists the new goal. If the
// tracked entity does not resolve for this owner, nothing is written.
func (s *GoalService) CreateGoal(ctx context.Context, ownerID primitive.ObjectID, input CreateGoalInput) (*models.Goal, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: goal title is required", models.ErrInvalidInput)
	}
	if !models.AllowedGoalTypes[input.Type] {
		return nil, fmt.Errorf("%w: unknown goal type %q", models.ErrInvalidInput, input.Type)
	}
	if !models.AllowedGoalCategories[input.Category] {
		return nil, fmt.Errorf("%w: unknown goal category %q", models.ErrInvalidInput, input.Category)
	}

	target := 1
	switch input.Category {
	case models.GoalCategoryCustom:
		if input.CustomTarget < 0 {
			return nil, fmt.Errorf("%w: custom target cannot be negative", models.ErrInvalidInput)
		}
		if input.CustomTarget > 0 {
			target = input.CustomTarget
		}

	case models.GoalCategoryCourse, models.GoalCategoryModule:
		if input.TargetID == nil {
			return nil, fmt.Errorf("%w: target id is required for %s goals", models.ErrInvalidInput, input.Category)
		}

		course, err := s.resolveCourse(ctx, ownerID, input.Category, *input.TargetID)
		if err != nil {
			return nil, err
		}

		topics, ok := topicsInScope(input.Category, input.TargetID, course)
		if !ok {
			return nil, models.ErrNotFound
		}
		// Floor of 1 so a goal over an empty hierarchy never divides by zero.
		if target = len(topics); target < 1 {
			target = 1
		}
	}

	goal := &models.Goal{
		UserID:   ownerID,
		Title:    input.Title,
		Type:     input.Type,
		Category: input.Category,
		TargetID: input.TargetID,
		Target:   target,
		Current:  0,
		IsDone:   false,
		Deadline: input.Deadline,
		Color:    input.Color,
	}

	created, err := s.repo.Insert(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, fmt.Errorf("failed to create goal: %v", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"goal_id":  created.ID.Hex(),
		"category": created.Category,
		"target":   created.Target,
	}).Info("Goal created in service layer")
	return created, nil
}

// SyncGoalsForCourse recomputes current/is_done for every goal of this owner
// that tracks the given course or one of its modules. The hierarchy is read
// once; a read failure aborts before any goal is touched. Per-goal write
// failures are independent and reported as a single aggregated error.
func (s *GoalService) SyncGoalsForCourse(ctx context.Context, ownerID, courseID primitive.ObjectID) error {
	course, err := s.courseRepo.FindByID(ctx, courseID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load course for goal sync: %w", err)
	}

	goals, err := s.repo.FindTracking(ctx, ownerID, courseID, course.ModuleIDs())
	if err != nil {
		return fmt.Errorf("failed to load goals for sync: %v", err)
	}
	if len(goals) == 0 {
		return nil
	}

	failed := 0
	for i := range goals {
		goal := &goals[i]
		current, isDone := recomputeGoal(goal, course)
		if current == goal.Current && isDone == goal.IsDone {
			continue
		}

		if err := s.repo.UpdateProgress(ctx, goal.ID, current, isDone); err != nil {
			failed++
			logger.Log.WithError(err).WithField("goal_id", goal.ID.Hex()).Error("Failed to persist goal sync")
		}
	}

	if failed > 0 {
		return fmt.Errorf("goal sync for course %s finished with %d failed updates", courseID.Hex(), failed)
	}

	logger.Log.WithFields(logrus.Fields{
		"course_id": courseID.Hex(),
		"goals":     len(goals),
	}).Info("Goals synced with course")
	return nil
}

// UpdateGoalProgress manually advances a CUSTOM goal. COURSE/MODULE goals are
// derived from the hierarchy and cannot be advanced by hand.
func (s *GoalService) UpdateGoalProgress(ctx context.Context, ownerID, goalID primitive.ObjectID, newCurrent int) (*models.Goal, error) {
	if newCurrent < 0 {
		return nil, fmt.Errorf("%w: progress cannot be negative", models.ErrInvalidInput)
	}

	goal, err := s.repo.FindByID(ctx, goalID, ownerID)
	if err != nil {
		return nil, err
	}
	if goal.Category != models.GoalCategoryCustom {
		return nil, fmt.Errorf("%w: progress of %s goals is derived from the hierarchy", models.ErrInvalidInput, goal.Category)
	}

	isDone := newCurrent >= goal.Target
	// Stored current is capped at target; done state reflects the raw value.
	current := newCurrent
	if current > goal.Target {
		current = goal.Target
	}

	if err := s.repo.UpdateProgress(ctx, goal.ID, current, isDone); err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %v", err)
	}

	goal.Current = current
	goal.IsDone = isDone
	return goal, nil
}

// ToggleGoalDone flips the done flag of an owned goal.
func (s *GoalService) ToggleGoalDone(ctx context.Context, ownerID, goalID primitive.ObjectID) (*models.Goal, error) {
	goal, err := s.repo.FindByID(ctx, goalID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetDone(ctx, goal.ID, !goal.IsDone); err != nil {
		return nil, fmt.Errorf("failed to toggle goal: %v", err)
	}

	goal.IsDone = !goal.IsDone
	logger.Log.WithField("goal_id", goalID.Hex()).Info("Goal toggled in service layer")
	return goal, nil
}

// DeleteGoal removes a goal. Deleting an absent or foreign goal succeeds as
// a no-op; the caller's intent is already satisfied.
func (s *GoalService) DeleteGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, goalID, ownerID); err != nil {
		return fmt.Errorf("failed to delete goal: %v", err)
	}

	logger.Log.WithField("goal_id", goalID.Hex()).Info("Goal deleted in service layer")
	return nil
}

// GetGoal fetches a single owned goal.
func (s *GoalService) GetGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) (*models.Goal, error) {
	return s.repo.FindByID(ctx, goalID, ownerID)
}

// GetGoals lists all goals of the owner, newest first.
func (s *GoalService) GetGoals(ctx context.Context, ownerID primitive.ObjectID) ([]models.Goal, error) {
	goals, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}
	return goals, nil
}

// GetImminentGoal returns the single goal the dashboard should surface, or
// nil when the owner has no goals at all.
func (s *GoalService) GetImminentGoal(ctx context.Context, ownerID primitive.ObjectID) (*models.Goal, error) {
	goals, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}
	return SelectImminent(goals), nil
}

// ListGoalOwners returns every user that currently has goals. Used by the
// background risk scan to walk accounts.
func (s *GoalService) ListGoalOwners(ctx context.Context) ([]primitive.ObjectID, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal owners: %v", err)
	}
	return owners, nil
}

// resolveCourse loads the course snapshot a goal tracks: the course itself
// for COURSE goals, the course containing the module for MODULE goals.
func (s *GoalService) resolveCourse(ctx context.Context, ownerID primitive.ObjectID, category string, targetID primitive.ObjectID) (*models.Course, error) {
	if category == models.GoalCategoryModule {
		return s.courseRepo.FindByModuleID(ctx, targetID, ownerID)
	}
	return s.courseRepo.FindByID(ctx, targetID, ownerID)
}

// topicsInScope is the single dispatch point deciding which topics a goal is
// measured against. Creation counts them for the target; sync counts the
// completed ones for current. Keeping one resolver stops the two sites from
// drifting apart.
func topicsInScope(category string, targetID *primitive.ObjectID, course *models.Course) ([]models.Topic, bool) {
	switch category {
	case models.GoalCategoryCourse:
		var topics []models.Topic
		for _, m := range course.Modules {
			topics = append(topics, m.Topics...)
		}
		return topics, true

	case models.GoalCategoryModule:
		if targetID == nil {
			return nil, false
		}
		module := course.FindModule(*targetID)
		if module == nil {
			return nil, false
		}
		return module.Topics, true
	}
	return nil, false
}

// recomputeGoal derives current/is_done purely from the hierarchy snapshot.
// Goals whose scope no longer resolves (e.g. the tracked module was removed)
// keep their stored state.
func recomputeGoal(goal *models.Goal, course *models.Course) (int, bool) {
	topics, ok := topicsInScope(goal.Category, goal.TargetID, course)
	if !ok {
		return goal.Current, goal.IsDone
	}

	current := 0
	for _, t := range topics {
		if t.IsCompleted {
			current++
		}
	}
	return current, current >= goal.Target
}
