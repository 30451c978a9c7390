package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityService records user actions and aggregates them for the heatmap.
type ActivityService struct {
	repo repository.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity appends one action. Logging is best effort; callers treat a
// failure as non-fatal so it only warns.
func (s *ActivityService) LogActivity(ctx context.Context, ownerID primitive.ObjectID, action string, targetID *primitive.ObjectID, details string) {
	activity := &models.Activity{
		UserID:   ownerID,
		Action:   action,
		TargetID: targetID,
		Details:  details,
	}
	if err := s.repo.Insert(ctx, activity); err != nil {
		logger.Log.WithError(err).WithField("action", action).Warn("Failed to record activity")
	}
}

// GetHeatmap aggregates activity counts per calendar day over the trailing
// window, keyed by "2006-01-02" dates.
func (s *ActivityService) GetHeatmap(ctx context.Context, ownerID primitive.ObjectID, days int) (map[string]int, error) {
	if days <= 0 {
		days = 90
	}

	since := time.Now().AddDate(0, 0, -days)
	activities, err := s.repo.FindSince(ctx, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %v", err)
	}

	heatmap := make(map[string]int)
	for _, a := range activities {
		heatmap[a.CreatedAt.Format("2006-01-02")]++
	}
	return heatmap, nil
}
