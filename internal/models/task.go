package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task priorities on the kanban board.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var AllowedPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Default board columns created on first use.
const (
	ColumnTodo       = "Todo"
	ColumnInProgress = "In Progress"
	ColumnDone       = "Done"
)

// TaskColumn is a board column. Columns are shared structure; the tasks in
// them are per user.
type TaskColumn struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title" json:"title"`
	Order int                `bson:"order" json:"order"`
}

// Task is a kanban card.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ColumnID  primitive.ObjectID `bson:"column_id" json:"column_id"`
	Content   string             `bson:"content" json:"content"`
	Priority  string             `bson:"priority" json:"priority"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// BoardColumn is a column with its tasks, as rendered on the board page.
type BoardColumn struct {
	TaskColumn
	Tasks []Task `json:"tasks"`
}
