package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository is the persistence boundary for goals. Every query is scoped
// by the owning user; a lookup for a foreign goal behaves exactly like a
// lookup for a missing one.
type GoalRepository interface {
	Insert(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Goal, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Goal, error)
	FindTracking(ctx context.Context, ownerID, courseID primitive.ObjectID, moduleIDs []primitive.ObjectID) ([]models.Goal, error)
	UpdateProgress(ctx context.Context, id primitive.ObjectID, current int, isDone bool) error
	SetDone(ctx context.Context, id primitive.ObjectID, isDone bool) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
	ListOwners(ctx context.Context) ([]primitive.ObjectID, error)
}

type goalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a goal repository backed by the "goals" collection.
func NewGoalRepository(db *mongo.Database) GoalRepository {
	return &goalRepository{collection: db.Collection("goals")}
}

func (r *goalRepository) Insert(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		goal.ID = insertedID
	}
	return goal, nil
}

func (r *goalRepository) FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to find goal")
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// FindTracking returns the goals whose progress depends on the given course:
// COURSE goals bound to it and MODULE goals bound to any of its modules.
func (r *goalRepository) FindTracking(ctx context.Context, ownerID, courseID primitive.ObjectID, moduleIDs []primitive.ObjectID) ([]models.Goal, error) {
	filter := bson.M{
		"user_id": ownerID,
		"$or": []bson.M{
			{"category": models.GoalCategoryCourse, "target_id": courseID},
			{"category": models.GoalCategoryModule, "target_id": bson.M{"$in": moduleIDs}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).WithField("course_id", courseID.Hex()).Error("Failed to fetch tracking goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, current int, isDone bool) error {
	update := bson.M{"$set": bson.M{
		"current":    current,
		"is_done":    isDone,
		"updated_at": time.Now(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal progress")
	}
	return err
}

func (r *goalRepository) SetDone(ctx context.Context, id primitive.ObjectID, isDone bool) error {
	update := bson.M{"$set": bson.M{"is_done": isDone, "updated_at": time.Now()}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to toggle goal")
	}
	return err
}

// Delete removes the goal when it exists and belongs to the owner. Deleting
// an absent or foreign goal is a successful no-op.
func (r *goalRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
	}
	return err
}

func (r *goalRepository) ListOwners(ctx context.Context) ([]primitive.ObjectID, error) {
	raw, err := r.collection.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list goal owners")
		return nil, err
	}

	owners := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			owners = append(owners, id)
		}
	}
	return owners, nil
}
