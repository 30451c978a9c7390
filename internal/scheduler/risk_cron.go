package cron

import (
	"context"

	"github.com/SKrishna-7/stratify/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartRiskCronJobs schedules the daily deadline risk scan.
func StartRiskCronJobs(scanner *jobs.RiskScanner) {
	c := cron.New()

	// Daily risk scan at 06:00 server time
	c.AddFunc("0 6 * * *", func() {
		if err := scanner.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunDailyScan failed")
		}
	})

	c.Start()
}
