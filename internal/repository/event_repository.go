package repository

import (
	"context"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository handles daily planner events.
type EventRepository interface {
	Insert(ctx context.Context, event *models.Event) (*models.Event, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error)
	SetDone(ctx context.Context, id, ownerID primitive.ObjectID, isDone bool) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type eventRepository struct {
	collection *mongo.Collection
}

func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{collection: db.Collection("events")}
}

func (r *eventRepository) Insert(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert event")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = insertedID
	}
	return event, nil
}

func (r *eventRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch events")
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) SetDone(ctx context.Context, id, ownerID primitive.ObjectID, isDone bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{"is_done": isDone}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("event_id", id.Hex()).Error("Failed to toggle event")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("event_id", id.Hex()).Error("Failed to delete event")
	}
	return err
}
