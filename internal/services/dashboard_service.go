package services

import (
	"context"
	"fmt"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardService assembles the single home-screen payload from the other
// services so the client needs one request.
type DashboardService struct {
	users      *UserService
	courses    *CourseService
	goals      *GoalService
	tasks      *TaskService
	events     *EventService
	activities *ActivityService
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(users *UserService, courses *CourseService, goals *GoalService, tasks *TaskService, events *EventService, activities *ActivityService) *DashboardService {
	return &DashboardService{
		users:      users,
		courses:    courses,
		goals:      goals,
		tasks:      tasks,
		events:     events,
		activities: activities,
	}
}

// Dashboard is the aggregated home-screen payload.
type Dashboard struct {
	User            models.PublicUser `json:"user"`
	Courses         []CourseSummary   `json:"courses"`
	Goals           []models.Goal     `json:"goals"`
	ImminentGoal    *models.Goal      `json:"imminent_goal,omitempty"`
	ImminentOutlook *Forecast         `json:"imminent_outlook,omitempty"`
	DailyTasks      []models.Task     `json:"daily_tasks"`
	Events          []models.Event    `json:"events"`
	Heatmap         map[string]int    `json:"heatmap"`
}

// dailyTaskLimit caps the "today" list to the top of the Todo column.
const dailyTaskLimit = 3

// GetDashboard builds the payload. The imminent goal's outlook uses the
// default velocity; secondary sections degrade to empty on failure rather
// than failing the whole page.
func (s *DashboardService) GetDashboard(ctx context.Context, ownerID primitive.ObjectID) (*Dashboard, error) {
	user, err := s.users.GetUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	// Opening the dashboard counts as the day's visit for the streak.
	if err := s.users.touchStreak(ctx, user); err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Warn("Failed to advance streak")
	}

	courses, err := s.courses.GetCourseSummaries(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.GetGoals(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		User:       user.Public(),
		Courses:    courses,
		Goals:      goals,
		DailyTasks: []models.Task{},
		Events:     []models.Event{},
		Heatmap:    map[string]int{},
	}

	if imminent := SelectImminent(goals); imminent != nil {
		dashboard.ImminentGoal = imminent

		outlook, err := ForecastGoal(imminent, DefaultVelocityPerWeek)
		if err != nil {
			logger.Log.WithError(err).WithField("goal_id", imminent.ID.Hex()).Warn("Failed to forecast imminent goal")
		} else {
			dashboard.ImminentOutlook = outlook
		}
	}

	if tasks, err := s.dailyTasks(ctx, ownerID); err != nil {
		logger.Log.WithError(err).Warn("Failed to load daily tasks for dashboard")
	} else {
		dashboard.DailyTasks = tasks
	}

	if events, err := s.events.GetEvents(ctx, ownerID); err != nil {
		logger.Log.WithError(err).Warn("Failed to load events for dashboard")
	} else if events != nil {
		dashboard.Events = events
	}

	if heatmap, err := s.activities.GetHeatmap(ctx, ownerID, 90); err != nil {
		logger.Log.WithError(err).Warn("Failed to load heatmap for dashboard")
	} else {
		dashboard.Heatmap = heatmap
	}

	return dashboard, nil
}

// dailyTasks picks the top cards from the Todo column.
func (s *DashboardService) dailyTasks(ctx context.Context, ownerID primitive.ObjectID) ([]models.Task, error) {
	column, err := s.tasks.repo.FindColumnByTitle(ctx, models.ColumnTodo)
	if err != nil {
		return []models.Task{}, nil
	}

	tasks, err := s.tasks.repo.FindTasksInColumn(ctx, ownerID, column.ID)
	if err != nil {
		return nil, err
	}
	if len(tasks) > dailyTaskLimit {
		tasks = tasks[:dailyTaskLimit]
	}
	return tasks, nil
}
