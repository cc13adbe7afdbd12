package scheduler

import (
	"context"
	"fmt"
	"time"

	"course_completion_report/internal/app" // For DeliveryService interface
	"course_completion_report/internal/infra/observability"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ExportScheduler struct {
	cronEngine *cron.Cron
	delivery   app.DeliveryService // Using the interface
	logger     *logrus.Entry
	cronSpec   string
	timeout    time.Duration
}

func NewExportScheduler(
	delivery app.DeliveryService,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 7 * * 1" (07:00 every Monday)
	location *time.Location,
	timeout time.Duration,
) *ExportScheduler {
	if location == nil {
		location = time.Local
	}
	return &ExportScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		delivery:   delivery,
		logger:     logger,
		cronSpec:   cronSpec,
		timeout:    timeout,
	}
}

// Start registers the delivery job and starts the cron engine.
func (s *ExportScheduler) Start() error {
	s.logger.Info("Starting export scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for scheduled report delivery.")
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("could not add scheduled export cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Export scheduler started.")
	return nil
}

// RunOnce performs one delivery run within the configured timeout.
func (s *ExportScheduler) RunOnce(parent context.Context) {
	ctx := parent
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.timeout)
		defer cancel()
	}

	err := s.delivery.DeliverScheduledExports(ctx)
	observability.RecordScheduledRun(err)
	if err != nil {
		s.logger.WithError(err).Error("Error during scheduled report delivery")
		return
	}
	s.logger.Info("Scheduled report delivery finished successfully.")
}

// Next returns when the job will run next, or the zero time before Start.
func (s *ExportScheduler) Next() time.Time {
	entries := s.cronEngine.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *ExportScheduler) Stop() {
	s.logger.Info("Stopping export scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Export scheduler gracefully stopped.")
}
