package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
)

// DefaultVelocityPerWeek is the assumed completion rate used when the caller
// has no observed velocity.
const DefaultVelocityPerWeek = 2.5

// Forecast is a derived, side-effect-free projection for one goal.
type Forecast struct {
	ItemsRemaining      int       `json:"items_remaining"`
	WeeksNeeded         float64   `json:"weeks_needed"`
	PredictedCompletion time.Time `json:"predicted_completion"`
	AtRisk              bool      `json:"at_risk"`
}

// ForecastGoal projects when the goal will be finished at the given velocity
// (units per week) and whether that projection overruns the deadline.
func ForecastGoal(goal *models.Goal, velocityPerWeek float64) (*Forecast, error) {
	return forecastAt(goal, velocityPerWeek, time.Now())
}

func forecastAt(goal *models.Goal, velocityPerWeek float64, now time.Time) (*Forecast, error) {
	if velocityPerWeek <= 0 {
		return nil, fmt.Errorf("%w: velocity must be positive, got %v", models.ErrInvalidInput, velocityPerWeek)
	}

	remaining := goal.Remaining()
	if remaining == 0 {
		// Nothing left: completion is now and a deadline cannot be at risk.
		return &Forecast{PredictedCompletion: now}, nil
	}

	weeksNeeded := float64(remaining) / velocityPerWeek
	predicted := now.Add(time.Duration(weeksNeeded * 7 * 24 * float64(time.Hour)))

	return &Forecast{
		ItemsRemaining:      remaining,
		WeeksNeeded:         weeksNeeded,
		PredictedCompletion: predicted,
		AtRisk:              goal.HasDeadline() && predicted.After(goal.Deadline),
	}, nil
}

// SelectImminent picks the one goal worth surfacing. Active goals closest to
// completion come first; with nothing in flight, the most recently created
// completed goal is shown instead. Exactly these two tiers, nothing else.
func SelectImminent(goals []models.Goal) *models.Goal {
	var active []models.Goal
	for _, g := range goals {
		if !g.IsDone && g.Target > 0 {
			active = append(active, g)
		}
	}
	if len(active) > 0 {
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].Remaining() < active[j].Remaining()
		})
		top := active[0]
		return &top
	}

	var done []models.Goal
	for _, g := range goals {
		if g.IsDone {
			done = append(done, g)
		}
	}
	if len(done) > 0 {
		sort.SliceStable(done, func(i, j int) bool {
			return done[i].CreatedAt.After(done[j].CreatedAt)
		})
		top := done[0]
		return &top
	}

	return nil
}
