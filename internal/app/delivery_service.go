package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"course_completion_report/internal/domain/report"
	domainTelegram "course_completion_report/internal/domain/telegram" // Import from domain

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DeliveryService defines the scheduled report delivery workflow.
type DeliveryService interface {
	// DeliverScheduledExports renders every configured course report and
	// sends the files to the manager chat.
	DeliverScheduledExports(ctx context.Context) error
}

// DeliveryServiceImpl implements the DeliveryService interface.
type DeliveryServiceImpl struct {
	exports           Exporter
	telegramClient    domainTelegram.Client // Use the interface from the domain package
	logger            *logrus.Entry
	managerTelegramID int64
	courseIDs         []int64
	format            report.Format
}

func NewDeliveryServiceImpl(
	exports Exporter,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	managerID int64,
	courseIDs []int64,
	format report.Format,
) *DeliveryServiceImpl {
	return &DeliveryServiceImpl{
		exports:           exports,
		telegramClient:    tc,
		logger:            logger,
		managerTelegramID: managerID,
		courseIDs:         courseIDs,
		format:            format,
	}
}

// DeliverScheduledExports sends both reports of every configured course. A
// failing course is logged and skipped; the returned error summarises all
// failures of the run. When anything was skipped or failed the manager also
// gets a text summary.
func (s *DeliveryServiceImpl) DeliverScheduledExports(ctx context.Context) error {
	runLogger := s.logger.WithField("run_id", uuid.NewString())

	if len(s.courseIDs) == 0 {
		runLogger.Info("No courses configured for scheduled export. Nothing to deliver.")
		return nil
	}
	if s.managerTelegramID == 0 {
		runLogger.Warn("Manager Telegram ID not configured. Cannot deliver scheduled exports.")
		return nil
	}
	runLogger.WithField("courses", len(s.courseIDs)).Info("Starting scheduled report delivery")

	attempted, failed, skipped := 0, 0, 0
	for _, courseID := range s.courseIDs {
		for _, kind := range []report.Kind{report.KindProgress, report.KindCompletion} {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("scheduled delivery interrupted: %w", err)
			}
			attempted++

			jobLogger := runLogger.WithFields(logrus.Fields{"course_id": courseID, "report": kind, "format": s.format})
			file, err := s.exports.Export(ctx, kind, s.format, courseID)
			if err != nil {
				if errors.Is(err, ErrNoCriteria) || errors.Is(err, ErrNoActivities) {
					skipped++
					jobLogger.WithError(err).Info("Report not applicable for course. Skipping.")
					continue
				}
				failed++
				jobLogger.WithError(err).Error("Failed to export report")
				continue
			}

			caption := fmt.Sprintf("%s report for course %d", kind, courseID)
			if err := s.telegramClient.SendDocument(s.managerTelegramID, file.Name, bytes.NewReader(file.Content), caption); err != nil {
				failed++
				jobLogger.WithError(err).Error("Failed to send report document")
				continue
			}
			jobLogger.WithField("file", file.Name).Info("Report delivered")
		}
	}

	if failed > 0 || skipped > 0 {
		summary := fmt.Sprintf("Scheduled export: %d delivered, %d skipped, %d failed.", attempted-failed-skipped, skipped, failed)
		if err := s.telegramClient.SendMessage(s.managerTelegramID, summary, nil); err != nil {
			runLogger.WithError(err).Warn("Failed to send delivery summary")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scheduled exports failed", failed, attempted)
	}
	runLogger.Info("Scheduled report delivery complete")
	return nil
}
