package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventService handles the daily planner.
type EventService struct {
	repo repository.EventRepository
}

// NewEventService creates a new instance of EventService.
func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// CreateEvent adds a planner entry. StartTime is a display string like
// "09:30"; an empty date defaults to today.
func (s *EventService) CreateEvent(ctx context.Context, ownerID primitive.ObjectID, event models.Event) (*models.Event, error) {
	if event.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", models.ErrInvalidInput)
	}
	if event.StartTime == "" {
		return nil, fmt.Errorf("%w: event start time is required", models.ErrInvalidInput)
	}
	if event.Date.IsZero() {
		event.Date = time.Now()
	}

	event.UserID = ownerID
	event.IsDone = false
	created, err := s.repo.Insert(ctx, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %v", err)
	}
	return created, nil
}

// GetEvents lists the owner's planner entries in start-time order.
func (s *EventService) GetEvents(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error) {
	events, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %v", err)
	}
	return events, nil
}

// ToggleEvent marks a planner entry done or not done.
func (s *EventService) ToggleEvent(ctx context.Context, ownerID, eventID primitive.ObjectID, isDone bool) error {
	return s.repo.SetDone(ctx, eventID, ownerID, isDone)
}

// DeleteEvent removes a planner entry.
func (s *EventService) DeleteEvent(ctx context.Context, ownerID, eventID primitive.ObjectID) error {
	return s.repo.Delete(ctx, eventID, ownerID)
}
