package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/assetdesk/service-booking/internal/application"
)

// JobRunner coordinates the service's scheduled jobs.
type JobRunner struct {
	bookings *application.BookingService
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewJobRunner creates a job runner with all dependencies.
func NewJobRunner(bookings *application.BookingService, logger *zap.Logger) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the schedules and starts the cron loop.
func (jr *JobRunner) Start() error {
	// Nightly fleet snapshot at 02:00.
	if _, err := jr.cron.AddFunc("0 2 * * *", jr.TakeFleetSnapshot); err != nil {
		return err
	}
	jr.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (jr *JobRunner) Stop() context.Context {
	return jr.cron.Stop()
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.logger.Error("job panicked", zap.String("job", jobName), zap.Any("panic", r))
		}
	}()

	jr.logger.Info("starting job", zap.String("job", jobName))
	jobFunc()
	jr.logger.Info("job completed", zap.String("job", jobName))
}
