package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository/mocks"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func buildCourse(ownerID primitive.ObjectID, topicsPerModule ...int) *models.Course {
	course := &models.Course{
		ID:     primitive.NewObjectID(),
		UserID: ownerID,
	}
	for _, n := range topicsPerModule {
		module := models.Module{ID: primitive.NewObjectID(), Status: models.ModuleStatusPending}
		for i := 0; i < n; i++ {
			module.Topics = append(module.Topics, models.Topic{ID: primitive.NewObjectID()})
		}
		course.Modules = append(course.Modules, module)
	}
	return course
}

func completeTopics(course *models.Course, moduleIdx, n int) {
	for i := 0; i < n; i++ {
		course.Modules[moduleIdx].Topics[i].IsCompleted = true
	}
}

func TestCreateGoal_CourseTargetFromTopicCount(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 3, 4)

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("Insert", mock.Anything, mock.MatchedBy(func(g *models.Goal) bool {
		return g.Target == 7 && g.Current == 0 && !g.IsDone
	})).Return(&models.Goal{ID: primitive.NewObjectID(), Target: 7}, nil)

	goal, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title:    "Finish DSA course",
		Type:     models.GoalTypeMonthly,
		Category: models.GoalCategoryCourse,
		TargetID: &course.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, goal.Target)
	goalRepo.AssertExpectations(t)
	courseRepo.AssertExpectations(t)
}

func TestCreateGoal_ModuleTargetFromModuleTopics(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 3, 5)
	moduleID := course.Modules[1].ID

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByModuleID", mock.Anything, moduleID, ownerID).Return(course, nil)
	goalRepo.On("Insert", mock.Anything, mock.MatchedBy(func(g *models.Goal) bool {
		return g.Target == 5
	})).Return(&models.Goal{ID: primitive.NewObjectID(), Target: 5}, nil)

	_, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title:    "Graphs module",
		Type:     models.GoalTypeWeekly,
		Category: models.GoalCategoryModule,
		TargetID: &moduleID,
	})

	require.NoError(t, err)
	goalRepo.AssertExpectations(t)
}

func TestCreateGoal_EmptyCourseGetsTargetFloorOfOne(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID)

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("Insert", mock.Anything, mock.MatchedBy(func(g *models.Goal) bool {
		return g.Target == 1
	})).Return(&models.Goal{ID: primitive.NewObjectID(), Target: 1}, nil)

	_, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title:    "Empty course",
		Type:     models.GoalTypeWeekly,
		Category: models.GoalCategoryCourse,
		TargetID: &course.ID,
	})

	require.NoError(t, err)
	goalRepo.AssertExpectations(t)
}

func TestCreateGoal_ForeignCourseWritesNothing(t *testing.T) {
	ownerID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, courseID, ownerID).Return(nil, models.ErrNotFound)

	_, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title:    "Someone else's course",
		Type:     models.GoalTypeWeekly,
		Category: models.GoalCategoryCourse,
		TargetID: &courseID,
	})

	assert.ErrorIs(t, err, models.ErrNotFound)
	goalRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateGoal_CustomDefaults(t *testing.T) {
	ownerID := primitive.NewObjectID()

	tests := []struct {
		name         string
		customTarget int
		wantTarget   int
		wantErr      bool
	}{
		{name: "explicit target", customTarget: 12, wantTarget: 12},
		{name: "zero defaults to one", customTarget: 0, wantTarget: 1},
		{name: "negative rejected", customTarget: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goalRepo := new(mocks.GoalRepository)
			courseRepo := new(mocks.CourseRepository)
			service := NewGoalService(goalRepo, courseRepo)

			if !tt.wantErr {
				goalRepo.On("Insert", mock.Anything, mock.MatchedBy(func(g *models.Goal) bool {
					return g.Target == tt.wantTarget
				})).Return(&models.Goal{Target: tt.wantTarget}, nil)
			}

			_, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
				Title:        "Solve problems",
				Type:         models.GoalTypeWeekly,
				Category:     models.GoalCategoryCustom,
				CustomTarget: tt.customTarget,
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidInput)
				goalRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			goalRepo.AssertExpectations(t)
		})
	}
}

func TestCreateGoal_ValidationRejectsUnknownEnums(t *testing.T) {
	ownerID := primitive.NewObjectID()
	service := NewGoalService(new(mocks.GoalRepository), new(mocks.CourseRepository))

	_, err := service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title: "Bad type", Type: "DAILY", Category: models.GoalCategoryCustom,
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title: "Bad category", Type: models.GoalTypeWeekly, Category: "PROJECT",
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = service.CreateGoal(context.Background(), ownerID, CreateGoalInput{
		Title: "Missing target", Type: models.GoalTypeWeekly, Category: models.GoalCategoryCourse,
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSyncGoalsForCourse_RecomputesCourseAndModuleGoals(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 3, 4)
	completeTopics(course, 0, 2)
	completeTopics(course, 1, 4)
	moduleID := course.Modules[1].ID

	courseGoal := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryCourse, TargetID: &course.ID,
		Target: 7, Current: 1,
	}
	moduleGoal := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryModule, TargetID: &moduleID,
		Target: 4, Current: 2,
	}

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{courseGoal, moduleGoal}, nil)
	// 6 of 7 topics done across the course, module fully done.
	goalRepo.On("UpdateProgress", mock.Anything, courseGoal.ID, 6, false).Return(nil)
	goalRepo.On("UpdateProgress", mock.Anything, moduleGoal.ID, 4, true).Return(nil)

	err := service.SyncGoalsForCourse(context.Background(), ownerID, course.ID)

	require.NoError(t, err)
	goalRepo.AssertExpectations(t)
}

func TestSyncGoalsForCourse_SkipsUnchangedGoals(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 3)
	completeTopics(course, 0, 2)

	upToDate := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryCourse, TargetID: &course.ID,
		Target: 3, Current: 2,
	}

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{upToDate}, nil)

	err := service.SyncGoalsForCourse(context.Background(), ownerID, course.ID)

	require.NoError(t, err)
	goalRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncGoalsForCourse_AbortsWhenCourseReadFails(t *testing.T) {
	ownerID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, courseID, ownerID).Return(nil, errors.New("connection reset"))

	err := service.SyncGoalsForCourse(context.Background(), ownerID, courseID)

	assert.Error(t, err)
	goalRepo.AssertNotCalled(t, "FindTracking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	goalRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncGoalsForCourse_AggregatesWriteFailures(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 2)
	completeTopics(course, 0, 1)

	failing := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryCourse, TargetID: &course.ID,
		Target: 2, Current: 0,
	}

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{failing}, nil)
	goalRepo.On("UpdateProgress", mock.Anything, failing.ID, 1, false).Return(errors.New("write timeout"))

	err := service.SyncGoalsForCourse(context.Background(), ownerID, course.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 failed updates")
}

func TestSyncGoalsForCourse_RemovedModuleKeepsStoredState(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 3)
	orphanModuleID := primitive.NewObjectID()

	orphan := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryModule, TargetID: &orphanModuleID,
		Target: 4, Current: 2,
	}

	goalRepo := new(mocks.GoalRepository)
	courseRepo := new(mocks.CourseRepository)
	service := NewGoalService(goalRepo, courseRepo)

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{orphan}, nil)

	err := service.SyncGoalsForCourse(context.Background(), ownerID, course.ID)

	require.NoError(t, err)
	goalRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateGoalProgress(t *testing.T) {
	ownerID := primitive.NewObjectID()

	tests := []struct {
		name        string
		goal        *models.Goal
		newCurrent  int
		wantCurrent int
		wantDone    bool
		wantErr     error
	}{
		{
			name:        "partial progress",
			goal:        &models.Goal{ID: primitive.NewObjectID(), Category: models.GoalCategoryCustom, Target: 10, Current: 3},
			newCurrent:  7,
			wantCurrent: 7,
			wantDone:    false,
		},
		{
			name:        "overshoot capped at target but done",
			goal:        &models.Goal{ID: primitive.NewObjectID(), Category: models.GoalCategoryCustom, Target: 10},
			newCurrent:  15,
			wantCurrent: 10,
			wantDone:    true,
		},
		{
			name:       "negative rejected",
			goal:       &models.Goal{ID: primitive.NewObjectID(), Category: models.GoalCategoryCustom, Target: 10},
			newCurrent: -1,
			wantErr:    models.ErrInvalidInput,
		},
		{
			name:       "derived goal rejected",
			goal:       &models.Goal{ID: primitive.NewObjectID(), Category: models.GoalCategoryCourse, Target: 10},
			newCurrent: 5,
			wantErr:    models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goalRepo := new(mocks.GoalRepository)
			service := NewGoalService(goalRepo, new(mocks.CourseRepository))

			if tt.newCurrent >= 0 {
				goalRepo.On("FindByID", mock.Anything, tt.goal.ID, ownerID).Return(tt.goal, nil)
			}
			if tt.wantErr == nil {
				goalRepo.On("UpdateProgress", mock.Anything, tt.goal.ID, tt.wantCurrent, tt.wantDone).Return(nil)
			}

			updated, err := service.UpdateGoalProgress(context.Background(), ownerID, tt.goal.ID, tt.newCurrent)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, updated.Current)
			assert.Equal(t, tt.wantDone, updated.IsDone)
			goalRepo.AssertExpectations(t)
		})
	}
}

func TestToggleGoalDone(t *testing.T) {
	ownerID := primitive.NewObjectID()
	goal := &models.Goal{ID: primitive.NewObjectID(), Category: models.GoalCategoryCustom, IsDone: false}

	goalRepo := new(mocks.GoalRepository)
	service := NewGoalService(goalRepo, new(mocks.CourseRepository))

	goalRepo.On("FindByID", mock.Anything, goal.ID, ownerID).Return(goal, nil)
	goalRepo.On("SetDone", mock.Anything, goal.ID, true).Return(nil)

	toggled, err := service.ToggleGoalDone(context.Background(), ownerID, goal.ID)

	require.NoError(t, err)
	assert.True(t, toggled.IsDone)
	goalRepo.AssertExpectations(t)
}

func TestDeleteGoal_IsIdempotent(t *testing.T) {
	ownerID := primitive.NewObjectID()
	goalID := primitive.NewObjectID()

	goalRepo := new(mocks.GoalRepository)
	service := NewGoalService(goalRepo, new(mocks.CourseRepository))

	goalRepo.On("Delete", mock.Anything, goalID, ownerID).Return(nil)

	assert.NoError(t, service.DeleteGoal(context.Background(), ownerID, goalID))
	assert.NoError(t, service.DeleteGoal(context.Background(), ownerID, goalID))
}
