package app

import (
	"context"
	"errors"

	"course_completion_report/internal/domain/report"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = errors.New("performing user is not authorized as an admin")

// AdminService guards on-demand exports requested through the bot.
type AdminService struct {
	exports         Exporter
	adminTelegramID int64
}

func NewAdminService(exports Exporter, adminID int64) *AdminService {
	return &AdminService{
		exports:         exports,
		adminTelegramID: adminID,
	}
}

// IsAdmin reports whether the Telegram user may request reports.
func (s *AdminService) IsAdmin(telegramID int64) bool {
	return telegramID == s.adminTelegramID
}

// RequestExport renders a whole-course report for the admin.
func (s *AdminService) RequestExport(ctx context.Context, performingAdminID int64, kind report.Kind, format report.Format, courseID int64) (*ExportFile, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	return s.exports.Export(ctx, kind, format, courseID)
}
