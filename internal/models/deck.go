package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card mastery levels, set by the user while reviewing.
const (
	MasteryNew    = "new"
	MasteryHard   = "hard"
	MasteryMedium = "medium"
	MasteryEasy   = "easy"
)

var AllowedMasteries = map[string]bool{
	MasteryNew:    true,
	MasteryHard:   true,
	MasteryMedium: true,
	MasteryEasy:   true,
}

// Deck is a flashcard deck with its cards embedded.
type Deck struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Cards       []Flashcard        `bson:"cards" json:"cards"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Flashcard is a single front/back card.
type Flashcard struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Front     string             `bson:"front" json:"front"`
	Back      string             `bson:"back" json:"back"`
	Mastery   string             `bson:"mastery" json:"mastery"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MasteredCount reports how many cards are rated easy.
func (d *Deck) MasteredCount() int {
	count := 0
	for _, c := range d.Cards {
		if c.Mastery == MasteryEasy {
			count++
		}
	}
	return count
}
