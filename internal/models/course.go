package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Module statuses used on the course page.
const (
	ModuleStatusPending    = "pending"
	ModuleStatusInProgress = "in-progress"
	ModuleStatusCompleted  = "completed"
)

var AllowedModuleStatuses = map[string]bool{
	ModuleStatusPending:    true,
	ModuleStatusInProgress: true,
	ModuleStatusCompleted:  true,
}

// Course is the root of the study hierarchy. Modules and their topics are
// embedded so a single read returns the whole tree.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	StartDate   time.Time          `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     time.Time          `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Modules     []Module           `bson:"modules" json:"modules"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Module groups topics inside a course.
type Module struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Title  string             `bson:"title" json:"title"`
	Status string             `bson:"status" json:"status"`
	Topics []Topic            `bson:"topics" json:"topics"`
}

// Topic is the completable leaf unit that drives goal progress.
type Topic struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Duration     string             `bson:"duration,omitempty" json:"duration,omitempty"`
	IsCompleted  bool               `bson:"is_completed" json:"is_completed"`
	CompletedAt  *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	IsFocus      bool               `bson:"is_focus" json:"is_focus"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	ResourceURL  string             `bson:"resource_url,omitempty" json:"resource_url,omitempty"`
	ResourceMode string             `bson:"resource_mode,omitempty" json:"resource_mode,omitempty"`
}

// ModuleIDs lists the ids of all modules in the course.
func (c *Course) ModuleIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(c.Modules))
	for _, m := range c.Modules {
		ids = append(ids, m.ID)
	}
	return ids
}

// FindModule returns the embedded module with the given id, if any.
func (c *Course) FindModule(id primitive.ObjectID) *Module {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i]
		}
	}
	return nil
}

// FindTopic locates a topic anywhere in the course and returns the module
// holding it together with the topic itself.
func (c *Course) FindTopic(id primitive.ObjectID) (*Module, *Topic) {
	for i := range c.Modules {
		for j := range c.Modules[i].Topics {
			if c.Modules[i].Topics[j].ID == id {
				return &c.Modules[i], &c.Modules[i].Topics[j]
			}
		}
	}
	return nil, nil
}
