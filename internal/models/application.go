package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusApplied is the default status for a freshly tracked application.
const StatusApplied = "Applied"

// JobApplication tracks one placement application.
type JobApplication struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Company     string             `bson:"company" json:"company"`
	Position    string             `bson:"position" json:"position"`
	Status      string             `bson:"status" json:"status"`
	Salary      string             `bson:"salary,omitempty" json:"salary,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	DateApplied time.Time          `bson:"date_applied" json:"date_applied"`
}
