package services

import (
	"context"
	"fmt"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationService tracks placement applications.
type ApplicationService struct {
	repo repository.ApplicationRepository
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(repo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{repo: repo}
}

// CreateApplication records a new application, defaulting its status.
func (s *ApplicationService) CreateApplication(ctx context.Context, ownerID primitive.ObjectID, app models.JobApplication) (*models.JobApplication, error) {
	if app.Company == "" || app.Position == "" {
		return nil, fmt.Errorf("%w: company and position are required", models.ErrInvalidInput)
	}
	if app.Status == "" {
		app.Status = models.StatusApplied
	}

	app.UserID = ownerID
	created, err := s.repo.Insert(ctx, &app)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %v", err)
	}
	return created, nil
}

// GetApplications lists the owner's applications, most recent first.
func (s *ApplicationService) GetApplications(ctx context.Context, ownerID primitive.ObjectID) ([]models.JobApplication, error) {
	apps, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %v", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application through the pipeline.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, ownerID, appID primitive.ObjectID, status string) error {
	if status == "" {
		return fmt.Errorf("%w: status is required", models.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, appID, ownerID, status)
}

// DeleteApplication removes an application record.
func (s *ApplicationService) DeleteApplication(ctx context.Context, ownerID, appID primitive.ObjectID) error {
	return s.repo.Delete(ctx, appID, ownerID)
}
