package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a daily planner entry.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Subtitle  string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	StartTime string             `bson:"start_time" json:"start_time"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	IsDone    bool               `bson:"is_done" json:"is_done"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
