package mocks

import (
	"context"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalRepository is a testify mock of repository.GoalRepository.
type GoalRepository struct {
	mock.Mock
}

func (m *GoalRepository) Insert(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	args := m.Called(ctx, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

func (m *GoalRepository) FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Goal, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

func (m *GoalRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Goal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Goal), args.Error(1)
}

func (m *GoalRepository) FindTracking(ctx context.Context, ownerID, courseID primitive.ObjectID, moduleIDs []primitive.ObjectID) ([]models.Goal, error) {
	args := m.Called(ctx, ownerID, courseID, moduleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Goal), args.Error(1)
}

func (m *GoalRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, current int, isDone bool) error {
	args := m.Called(ctx, id, current, isDone)
	return args.Error(0)
}

func (m *GoalRepository) SetDone(ctx context.Context, id primitive.ObjectID, isDone bool) error {
	args := m.Called(ctx, id, isDone)
	return args.Error(0)
}

func (m *GoalRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *GoalRepository) ListOwners(ctx context.Context) ([]primitive.ObjectID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}
