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

// CourseRepository is the hierarchy accessor: courses with their embedded
// modules and topics, always scoped to the owning user.
type CourseRepository interface {
	Insert(ctx context.Context, course *models.Course) (*models.Course, error)
	FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Course, error)
	FindByModuleID(ctx context.Context, moduleID, ownerID primitive.ObjectID) (*models.Course, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Course, error)
	Replace(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type courseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository creates a course repository backed by the "courses"
// collection.
func NewCourseRepository(db *mongo.Database) CourseRepository {
	return &courseRepository{collection: db.Collection("courses")}
}

func (r *courseRepository) Insert(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	if course.Modules == nil {
		course.Modules = []models.Module{}
	}

	result, err := r.collection.InsertOne(ctx, course)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert course")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		course.ID = insertedID
	}
	return course, nil
}

func (r *courseRepository) FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Course, error) {
	var course models.Course

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("course_id", id.Hex()).Error("Failed to find course")
		return nil, err
	}
	return &course, nil
}

// FindByModuleID resolves the course containing the given module. Ownership
// of the course transitively covers the module.
func (r *courseRepository) FindByModuleID(ctx context.Context, moduleID, ownerID primitive.ObjectID) (*models.Course, error) {
	var course models.Course

	filter := bson.M{"user_id": ownerID, "modules._id": moduleID}
	err := r.collection.FindOne(ctx, filter).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("module_id", moduleID.Hex()).Error("Failed to find course by module")
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch courses")
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Replace persists the whole course document after an in-memory mutation of
// its embedded modules or topics.
func (r *courseRepository) Replace(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": course.ID, "user_id": course.UserID}, course)
	if err != nil {
		logger.Log.WithError(err).WithField("course_id", course.ID.Hex()).Error("Failed to replace course")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("course_id", id.Hex()).Error("Failed to delete course")
	}
	return err
}
