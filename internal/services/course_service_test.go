package services

import (
	"context"
	"testing"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCourseServiceWithMocks() (*CourseService, *mocks.CourseRepository, *mocks.GoalRepository) {
	courseRepo := new(mocks.CourseRepository)
	goalRepo := new(mocks.GoalRepository)
	goals := NewGoalService(goalRepo, courseRepo)
	return NewCourseService(courseRepo, goals), courseRepo, goalRepo
}

func TestToggleTopic_CompletesTopicAndSyncsGoals(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 2)
	topicID := course.Modules[0].Topics[0].ID

	trackingGoal := models.Goal{
		ID: primitive.NewObjectID(), UserID: ownerID,
		Category: models.GoalCategoryCourse, TargetID: &course.ID,
		Target: 2, Current: 0,
	}

	service, courseRepo, goalRepo := newCourseServiceWithMocks()

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	courseRepo.On("Replace", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		_, topic := c.FindTopic(topicID)
		return topic != nil && topic.IsCompleted && topic.CompletedAt != nil
	})).Return(nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{trackingGoal}, nil)
	goalRepo.On("UpdateProgress", mock.Anything, trackingGoal.ID, 1, false).Return(nil)

	updated, err := service.ToggleTopic(context.Background(), ownerID, course.ID, topicID, true)

	require.NoError(t, err)
	_, topic := updated.FindTopic(topicID)
	assert.True(t, topic.IsCompleted)
	goalRepo.AssertExpectations(t)
	courseRepo.AssertExpectations(t)
}

func TestToggleTopic_UncheckClearsCompletedAt(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 1)
	completeTopics(course, 0, 1)
	topicID := course.Modules[0].Topics[0].ID

	service, courseRepo, goalRepo := newCourseServiceWithMocks()

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	courseRepo.On("Replace", mock.Anything, mock.Anything).Return(nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, course.ModuleIDs()).
		Return([]models.Goal{}, nil)

	updated, err := service.ToggleTopic(context.Background(), ownerID, course.ID, topicID, false)

	require.NoError(t, err)
	_, topic := updated.FindTopic(topicID)
	assert.False(t, topic.IsCompleted)
	assert.Nil(t, topic.CompletedAt)
}

func TestToggleTopic_UnknownTopicFails(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 1)

	service, courseRepo, _ := newCourseServiceWithMocks()
	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)

	_, err := service.ToggleTopic(context.Background(), ownerID, course.ID, primitive.NewObjectID(), true)

	assert.ErrorIs(t, err, models.ErrNotFound)
	courseRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestGetCourseSummaries_DerivesProgress(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 4, 4)
	completeTopics(course, 0, 4)
	completeTopics(course, 1, 2)
	course.Modules[0].Status = models.ModuleStatusCompleted
	course.Modules[1].Status = models.ModuleStatusInProgress
	course.Modules[1].Title = "Dynamic Programming"

	service, courseRepo, _ := newCourseServiceWithMocks()
	courseRepo.On("FindByOwner", mock.Anything, ownerID).Return([]models.Course{*course}, nil)

	summaries, err := service.GetCourseSummaries(context.Background(), ownerID)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	// 6 of 8 topics completed rounds to 75%.
	assert.Equal(t, 75, summaries[0].Progress)
	assert.Equal(t, 2, summaries[0].TotalModules)
	assert.Equal(t, 1, summaries[0].CompletedModules)
	assert.Equal(t, "Dynamic Programming", summaries[0].CurrentModuleName)
}

func TestGetCourseSummaries_EmptyCourse(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID)

	service, courseRepo, _ := newCourseServiceWithMocks()
	courseRepo.On("FindByOwner", mock.Anything, ownerID).Return([]models.Course{*course}, nil)

	summaries, err := service.GetCourseSummaries(context.Background(), ownerID)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Progress)
	assert.Equal(t, "Course Introduction", summaries[0].CurrentModuleName)
}

func TestDeleteModule_RemovesModuleAndResyncs(t *testing.T) {
	ownerID := primitive.NewObjectID()
	course := buildCourse(ownerID, 2, 3)
	moduleID := course.Modules[0].ID

	service, courseRepo, goalRepo := newCourseServiceWithMocks()

	courseRepo.On("FindByID", mock.Anything, course.ID, ownerID).Return(course, nil)
	courseRepo.On("Replace", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return len(c.Modules) == 1 && c.FindModule(moduleID) == nil
	})).Return(nil)
	goalRepo.On("FindTracking", mock.Anything, ownerID, course.ID, mock.Anything).
		Return([]models.Goal{}, nil)

	updated, err := service.DeleteModule(context.Background(), ownerID, course.ID, moduleID)

	require.NoError(t, err)
	assert.Len(t, updated.Modules, 1)
	courseRepo.AssertExpectations(t)
}
