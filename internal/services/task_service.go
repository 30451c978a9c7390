package services

import (
	"context"
	"fmt"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService handles the kanban board.
type TaskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// GetBoard returns every column with the owner's tasks, seeding the default
// columns on first use.
func (s *TaskService) GetBoard(ctx context.Context, ownerID primitive.ObjectID) ([]models.BoardColumn, error) {
	columns, err := s.repo.EnsureDefaultColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load board columns: %v", err)
	}

	board := make([]models.BoardColumn, 0, len(columns))
	for _, col := range columns {
		tasks, err := s.repo.FindTasksInColumn(ctx, ownerID, col.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks for column %s: %v", col.Title, err)
		}
		if tasks == nil {
			tasks = []models.Task{}
		}
		board = append(board, models.BoardColumn{TaskColumn: col, Tasks: tasks})
	}
	return board, nil
}

// CreateTask adds a card to the given column, appended at the end.
func (s *TaskService) CreateTask(ctx context.Context, ownerID, columnID primitive.ObjectID, content, priority string) (*models.Task, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: task content is required", models.ErrInvalidInput)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.AllowedPriorities[priority] {
		return nil, fmt.Errorf("%w: unknown priority %q", models.ErrInvalidInput, priority)
	}

	count, err := s.repo.CountInColumn(ctx, ownerID, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %v", err)
	}

	task := &models.Task{
		UserID:   ownerID,
		ColumnID: columnID,
		Content:  content,
		Priority: priority,
		Order:    int(count),
	}
	return s.repo.Insert(ctx, task)
}

// MoveTask drags a card to another column.
func (s *TaskService) MoveTask(ctx context.Context, ownerID, taskID, columnID primitive.ObjectID) error {
	return s.repo.Move(ctx, taskID, ownerID, columnID)
}

// UpdateTaskPriority changes a card's priority label.
func (s *TaskService) UpdateTaskPriority(ctx context.Context, ownerID, taskID primitive.ObjectID, priority string) error {
	if !models.AllowedPriorities[priority] {
		return fmt.Errorf("%w: unknown priority %q", models.ErrInvalidInput, priority)
	}
	return s.repo.UpdatePriority(ctx, taskID, ownerID, priority)
}

// DeleteTask removes a card.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID primitive.ObjectID) error {
	return s.repo.Delete(ctx, taskID, ownerID)
}
