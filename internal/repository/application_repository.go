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

// ApplicationRepository handles job application records.
type ApplicationRepository interface {
	Insert(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.JobApplication, error)
	UpdateStatus(ctx context.Context, id, ownerID primitive.ObjectID, status string) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type applicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) ApplicationRepository {
	return &applicationRepository{collection: db.Collection("applications")}
}

func (r *applicationRepository) Insert(ctx context.Context, app *models.JobApplication) (*models.JobApplication, error) {
	if app.DateApplied.IsZero() {
		app.DateApplied = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert application")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		app.ID = insertedID
	}
	return app, nil
}

func (r *applicationRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.JobApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_applied", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch applications")
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []models.JobApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id, ownerID primitive.ObjectID, status string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("application_id", id.Hex()).Error("Failed to update application status")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("application_id", id.Hex()).Error("Failed to delete application")
	}
	return err
}
