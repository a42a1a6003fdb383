// File: internal/jobs/rating_resync.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"fixitnow_backend/internal/config"
	"fixitnow_backend/internal/review"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RatingResyncJob periodically recomputes every provider's rating
// aggregate from its review set. Aggregates are written without locks on
// the hot path, so concurrent reviews can leave them slightly stale;
// this job converges them.
type RatingResyncJob struct {
	reviewService review.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewRatingResyncJob creates a new RatingResyncJob.
func NewRatingResyncJob(
	reviewService review.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *RatingResyncJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &RatingResyncJob{
		reviewService: reviewService,
		logger:        logger.Named("RatingResyncJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *RatingResyncJob) SetupAndStart() error {
	jobSpec := j.cfg.RatingResyncJobSchedule // e.g. "@daily", "0 3 * * *"
	if jobSpec == "" {
		j.logger.Warn("Rating resync job schedule not defined (RATING_RESYNC_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule rating resync job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Rating resync job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *RatingResyncJob) runJob() {
	j.logger.Info("Starting rating resync job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := j.reviewService.ResyncAllProviderRatings(ctx); err != nil {
		j.logger.Error("Rating resync job run failed", zap.Error(err))
	} else {
		j.logger.Info("Rating resync job run completed")
	}
}

// Stop gracefully stops the cron scheduler.
func (j *RatingResyncJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping rating resync job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Rating resync job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Rating resync job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
