package jobs

import (
	"context"
	"fmt"

	"github.com/SKrishna-7/stratify/internal/services"
	"github.com/sirupsen/logrus"
)

// RiskScanner walks every account, refreshes goal progress against the
// course hierarchy and flags goals whose projected completion overruns the
// deadline.
type RiskScanner struct {
	GoalService   *services.GoalService
	CourseService *services.CourseService
}

// NewRiskScanner creates a new instance of RiskScanner.
func NewRiskScanner(goalService *services.GoalService, courseService *services.CourseService) *RiskScanner {
	return &RiskScanner{
		GoalService:   goalService,
		CourseService: courseService,
	}
}

// RunDailyScan re-syncs tracking goals and logs every goal at risk at the
// default velocity. One failing account does not stop the scan.
func (r *RiskScanner) RunDailyScan(ctx context.Context) error {
	owners, err := r.GoalService.ListGoalOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list owners for risk scan: %v", err)
	}

	atRisk := 0
	for _, ownerID := range owners {
		courses, err := r.CourseService.GetCourseSummaries(ctx, ownerID)
		if err != nil {
			logrus.WithError(err).WithField("userID", ownerID.Hex()).Error("Risk scan skipped account")
			continue
		}

		for _, course := range courses {
			if err := r.GoalService.SyncGoalsForCourse(ctx, ownerID, course.ID); err != nil {
				logrus.WithError(err).WithField("courseID", course.ID.Hex()).Warn("Risk scan sync failed")
			}
		}

		goals, err := r.GoalService.GetGoals(ctx, ownerID)
		if err != nil {
			logrus.WithError(err).WithField("userID", ownerID.Hex()).Error("Risk scan failed to load goals")
			continue
		}

		for i := range goals {
			goal := &goals[i]
			if goal.IsDone || !goal.HasDeadline() {
				continue
			}

			forecast, err := services.ForecastGoal(goal, services.DefaultVelocityPerWeek)
			if err != nil {
				continue
			}
			if forecast.AtRisk {
				atRisk++
				logrus.WithFields(logrus.Fields{
					"userID":    ownerID.Hex(),
					"goalID":    goal.ID.Hex(),
					"goal":      goal.Title,
					"deadline":  goal.Deadline.Format("Jan 2"),
					"predicted": forecast.PredictedCompletion.Format("Jan 2"),
				}).Warn("Goal at risk of missing its deadline")
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"accounts": len(owners),
		"at_risk":  atRisk,
	}).Info("Risk scan completed")
	return nil
}
