package services

import (
	"testing"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestForecastGoal_ProjectsCompletionDate(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	goal := &models.Goal{Target: 10, Current: 4}

	forecast, err := forecastAt(goal, 2, now)

	require.NoError(t, err)
	assert.Equal(t, 6, forecast.ItemsRemaining)
	assert.InDelta(t, 3.0, forecast.WeeksNeeded, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 21), forecast.PredictedCompletion)
	assert.False(t, forecast.AtRisk)
}

func TestForecastGoal_AtRiskWhenPredictionOverrunsDeadline(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		atRisk   bool
	}{
		{name: "deadline after prediction", deadline: now.AddDate(0, 0, 30), atRisk: false},
		{name: "deadline before prediction", deadline: now.AddDate(0, 0, 10), atRisk: true},
		{name: "no deadline never at risk", deadline: time.Time{}, atRisk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &models.Goal{Target: 10, Current: 4, Deadline: tt.deadline}

			forecast, err := forecastAt(goal, 2, now)

			require.NoError(t, err)
			assert.Equal(t, tt.atRisk, forecast.AtRisk)
		})
	}
}

func TestForecastGoal_FinishedGoalCompletesNow(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	goal := &models.Goal{Target: 5, Current: 5, Deadline: now.AddDate(0, 0, -10)}

	forecast, err := forecastAt(goal, DefaultVelocityPerWeek, now)

	require.NoError(t, err)
	assert.Equal(t, 0, forecast.ItemsRemaining)
	assert.Equal(t, now, forecast.PredictedCompletion)
	// Even with the deadline in the past, a finished goal is not at risk.
	assert.False(t, forecast.AtRisk)
}

func TestForecastGoal_RejectsNonPositiveVelocity(t *testing.T) {
	goal := &models.Goal{Target: 5, Current: 1}

	_, err := ForecastGoal(goal, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ForecastGoal(goal, -1.5)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSelectImminent_ActiveGoalClosestToCompletionWins(t *testing.T) {
	far := models.Goal{ID: primitive.NewObjectID(), Title: "far", Target: 10, Current: 2}
	near := models.Goal{ID: primitive.NewObjectID(), Title: "near", Target: 10, Current: 8}
	done := models.Goal{ID: primitive.NewObjectID(), Title: "done", Target: 5, Current: 5, IsDone: true}

	picked := SelectImminent([]models.Goal{far, done, near})

	require.NotNil(t, picked)
	assert.Equal(t, near.ID, picked.ID)
}

func TestSelectImminent_TiesKeepListOrder(t *testing.T) {
	first := models.Goal{ID: primitive.NewObjectID(), Title: "first", Target: 10, Current: 6}
	second := models.Goal{ID: primitive.NewObjectID(), Title: "second", Target: 8, Current: 4}

	picked := SelectImminent([]models.Goal{first, second})

	require.NotNil(t, picked)
	assert.Equal(t, first.ID, picked.ID)
}

func TestSelectImminent_FallsBackToNewestCompletedGoal(t *testing.T) {
	older := models.Goal{
		ID: primitive.NewObjectID(), Title: "older", Target: 3, Current: 3,
		IsDone: true, CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := models.Goal{
		ID: primitive.NewObjectID(), Title: "newer", Target: 3, Current: 3,
		IsDone: true, CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}

	picked := SelectImminent([]models.Goal{older, newer})

	require.NotNil(t, picked)
	assert.Equal(t, newer.ID, picked.ID)
}

func TestSelectImminent_NoGoalsReturnsNil(t *testing.T) {
	assert.Nil(t, SelectImminent(nil))
	assert.Nil(t, SelectImminent([]models.Goal{}))
}

func TestSelectImminent_ReturnsCopy(t *testing.T) {
	goals := []models.Goal{{ID: primitive.NewObjectID(), Target: 4, Current: 1}}

	picked := SelectImminent(goals)
	require.NotNil(t, picked)

	picked.Current = 99
	assert.Equal(t, 1, goals[0].Current)
}
