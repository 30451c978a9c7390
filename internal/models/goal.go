package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal categories decide how target and current are computed: COURSE and
// MODULE goals derive both from the topic hierarchy, CUSTOM goals are a
// free-standing counter advanced by hand.
const (
	GoalCategoryCourse = "COURSE"
	GoalCategoryModule = "MODULE"
	GoalCategoryCustom = "CUSTOM"
)

// Goal types are an informational cadence label, not enforced by the engine.
const (
	GoalTypeWeekly  = "weekly"
	GoalTypeMonthly = "monthly"
)

var AllowedGoalCategories = map[string]bool{
	GoalCategoryCourse: true,
	GoalCategoryModule: true,
	GoalCategoryCustom: true,
}

var AllowedGoalTypes = map[string]bool{
	GoalTypeWeekly:  true,
	GoalTypeMonthly: true,
}

// Goal is a user-scoped tracked objective. Current and IsDone are stored
// denormalized for cheap reads; for COURSE/MODULE goals they are recomputed
// from the topic hierarchy on every sync rather than adjusted by deltas.
type Goal struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Title     string              `bson:"title" json:"title"`
	Type      string              `bson:"type" json:"type"`
	Category  string              `bson:"category" json:"category"`
	TargetID  *primitive.ObjectID `bson:"target_id,omitempty" json:"target_id,omitempty"`
	Target    int                 `bson:"target" json:"target"`
	Current   int                 `bson:"current" json:"current"`
	IsDone    bool                `bson:"is_done" json:"is_done"`
	Deadline  time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Color     string              `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// Remaining reports the units left to complete, floored at zero.
func (g *Goal) Remaining() int {
	if g.Current >= g.Target {
		return 0
	}
	return g.Target - g.Current
}

// HasDeadline reports whether a deadline was set; the zero time means none.
func (g *Goal) HasDeadline() bool {
	return !g.Deadline.IsZero()
}
