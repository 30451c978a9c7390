package repository

import (
	"context"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRepository stores the append-only activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *models.Activity) error
	FindSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]models.Activity, error)
}

type activityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{collection: db.Collection("activities")}
}

func (r *activityRepository) Insert(ctx context.Context, activity *models.Activity) error {
	activity.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert activity")
	}
	return err
}

func (r *activityRepository) FindSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]models.Activity, error) {
	filter := bson.M{"user_id": ownerID, "created_at": bson.M{"$gte": since}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch activities")
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
