package telegram

import (
	"bytes"
	"context"
	"fmt"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/report"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const msgUnauthorized = "Error: you are not allowed to run this command."

// RegisterAdminHandlers registers the report commands and the export
// callbacks of their format buttons. Only the configured admin may use them.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, baseLogger *logrus.Entry) {
	reportCommand := func(command string, kind report.Kind) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			handlerLogger := baseLogger.WithFields(logrus.Fields{
				"handler":   command,
				"sender_id": c.Sender().ID,
			})
			handlerLogger.Info("Command received")

			if !adminService.IsAdmin(c.Sender().ID) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send(msgUnauthorized)
			}

			courseID, err := parseCourseArg(c.Args())
			if err != nil {
				handlerLogger.WithError(err).Warn("Invalid command format")
				return c.Send(fmt.Sprintf("Invalid command format. Use: %s <CourseID>", command))
			}

			handlerLogger.WithField("course_id", courseID).Info("Offering export formats")
			return c.Send(fmt.Sprintf("Choose a format for the %s report of course %d:", kind, courseID), formatKeyboard(kind, courseID))
		}
	}

	b.Handle("/progress", reportCommand("/progress", report.KindProgress))
	b.Handle("/completion", reportCommand("/completion", report.KindCompletion))

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data
		kind, format, courseID, err := parseExportCallback(data)
		if err != nil {
			c.Bot().OnError(err, c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "export_callback",
			"sender_id": c.Sender().ID,
			"course_id": courseID,
			"report":    kind,
			"format":    format,
		})

		file, err := adminService.RequestExport(ctx, c.Sender().ID, kind, format, courseID)
		if err != nil {
			handlerLogger.WithError(err).Warn("Export failed")
			if respErr := c.Respond(&telebot.CallbackResponse{Text: "Export failed."}); respErr != nil {
				handlerLogger.WithError(respErr).Warn("Failed to answer callback")
			}
			return c.Send(exportErrorMessage(err, courseID))
		}

		if err := c.Respond(&telebot.CallbackResponse{Text: "Report ready."}); err != nil {
			handlerLogger.WithError(err).Warn("Failed to answer callback")
		}
		handlerLogger.WithField("file", file.Name).Info("Sending export")
		return c.Send(newDocument(file.Name, bytes.NewReader(file.Content), fmt.Sprintf("%s report for course %d", kind, courseID)))
	})
}
