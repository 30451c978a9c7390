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

// TaskRepository handles kanban columns and tasks. Columns are shared
// structure created once; tasks are owner-scoped.
type TaskRepository interface {
	EnsureDefaultColumns(ctx context.Context) ([]models.TaskColumn, error)
	FindColumnByTitle(ctx context.Context, title string) (*models.TaskColumn, error)
	FindTasks(ctx context.Context, ownerID primitive.ObjectID) ([]models.Task, error)
	FindTasksInColumn(ctx context.Context, ownerID, columnID primitive.ObjectID) ([]models.Task, error)
	CountInColumn(ctx context.Context, ownerID, columnID primitive.ObjectID) (int64, error)
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)
	Move(ctx context.Context, id, ownerID, columnID primitive.ObjectID) error
	UpdatePriority(ctx context.Context, id, ownerID primitive.ObjectID, priority string) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type taskRepository struct {
	columns *mongo.Collection
	tasks   *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &taskRepository{
		columns: db.Collection("task_columns"),
		tasks:   db.Collection("tasks"),
	}
}

// EnsureDefaultColumns creates the Todo / In Progress / Done columns on first
// use and returns all columns in board order.
func (r *taskRepository) EnsureDefaultColumns(ctx context.Context) ([]models.TaskColumn, error) {
	count, err := r.columns.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	if count == 0 {
		defaults := []interface{}{
			models.TaskColumn{Title: models.ColumnTodo, Order: 0},
			models.TaskColumn{Title: models.ColumnInProgress, Order: 1},
			models.TaskColumn{Title: models.ColumnDone, Order: 2},
		}
		if _, err := r.columns.InsertMany(ctx, defaults); err != nil {
			logger.Log.WithError(err).Error("Failed to seed default columns")
			return nil, err
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.columns.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var columns []models.TaskColumn
	if err := cursor.All(ctx, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *taskRepository) FindColumnByTitle(ctx context.Context, title string) (*models.TaskColumn, error) {
	var column models.TaskColumn

	err := r.columns.FindOne(ctx, bson.M{"title": title}).Decode(&column)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *taskRepository) FindTasks(ctx context.Context, ownerID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", ownerID.Hex()).Error("Failed to fetch tasks")
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindTasksInColumn(ctx context.Context, ownerID, columnID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"user_id": ownerID, "column_id": columnID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) CountInColumn(ctx context.Context, ownerID, columnID primitive.ObjectID) (int64, error) {
	return r.tasks.CountDocuments(ctx, bson.M{"user_id": ownerID, "column_id": columnID})
}

func (r *taskRepository) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.CreatedAt = time.Now()

	result, err := r.tasks.InsertOne(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert task")
		return nil, err
	}

	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = insertedID
	}
	return task, nil
}

func (r *taskRepository) Move(ctx context.Context, id, ownerID, columnID primitive.ObjectID) error {
	result, err := r.tasks.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{"column_id": columnID}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to move task")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *taskRepository) UpdatePriority(ctx context.Context, id, ownerID primitive.ObjectID, priority string) error {
	result, err := r.tasks.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{"priority": priority}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to update priority")
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	_, err := r.tasks.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to delete task")
	}
	return err
}
