package mocks

import (
	"context"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseRepository is a testify mock of repository.CourseRepository.
type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) Insert(ctx context.Context, course *models.Course) (*models.Course, error) {
	args := m.Called(ctx, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepository) FindByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Course, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepository) FindByModuleID(ctx context.Context, moduleID, ownerID primitive.ObjectID) (*models.Course, error) {
	args := m.Called(ctx, moduleID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Course, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *CourseRepository) Replace(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *CourseRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}
