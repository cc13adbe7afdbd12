package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"gopkg.in/telebot.v3"
)

// Callback data of the format buttons: exp|<kind>|<format>|<courseID>.
const exportCallbackPrefix = "exp"

// botFormats are the formats offered as buttons, in display order.
var botFormats = []struct {
	label  string
	format report.Format
}{
	{"CSV", report.FormatCSV},
	{"Excel CSV", report.FormatExcelCSV},
	{"XLSX", report.FormatXLSX},
	{"PDF", report.FormatPDF},
}

var errBadCallback = errors.New("malformed export callback")

func exportCallbackData(kind report.Kind, format report.Format, courseID int64) string {
	return strings.Join([]string{exportCallbackPrefix, string(kind), string(format), strconv.FormatInt(courseID, 10)}, "|")
}

// parseExportCallback is the inverse of exportCallbackData.
func parseExportCallback(data string) (report.Kind, report.Format, int64, error) {
	// telebot prefixes data of unique buttons with \f
	parts := strings.Split(strings.TrimPrefix(data, "\f"), "|")
	if len(parts) != 4 || parts[0] != exportCallbackPrefix {
		return "", "", 0, fmt.Errorf("%w: %q", errBadCallback, data)
	}

	kind := report.Kind(parts[1])
	if kind != report.KindProgress && kind != report.KindCompletion {
		return "", "", 0, fmt.Errorf("%w: unknown report %q", errBadCallback, parts[1])
	}
	format, ok := report.ParseFormat(parts[2])
	if !ok || format == report.FormatHTML {
		return "", "", 0, fmt.Errorf("%w: unknown format %q", errBadCallback, parts[2])
	}
	courseID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || courseID <= 0 {
		return "", "", 0, fmt.Errorf("%w: bad course id %q", errBadCallback, parts[3])
	}
	return kind, format, courseID, nil
}

// formatKeyboard offers every export format of one report as inline buttons.
func formatKeyboard(kind report.Kind, courseID int64) *telebot.ReplyMarkup {
	row := make([]telebot.InlineButton, 0, len(botFormats))
	for _, f := range botFormats {
		row = append(row, telebot.InlineButton{
			Text: f.label,
			Data: exportCallbackData(kind, f.format, courseID),
		})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{row}}
}

// parseCourseArg reads the single course id argument of a report command.
func parseCourseArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one course id, got %d arguments", len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("course id must be a positive number, got %q", args[0])
	}
	return id, nil
}

// exportErrorMessage is the chat reply for a failed export.
func exportErrorMessage(err error, courseID int64) string {
	switch {
	case errors.Is(err, app.ErrAdminNotAuthorized):
		return msgUnauthorized
	case errors.Is(err, course.ErrNotFound):
		return fmt.Sprintf("Course %d was not found.", courseID)
	case errors.Is(err, app.ErrCompletionNotEnabled):
		return fmt.Sprintf("Completion tracking is not enabled for course %d.", courseID)
	case errors.Is(err, app.ErrNoActivities):
		return fmt.Sprintf("Course %d has no activities with completion tracking.", courseID)
	case errors.Is(err, app.ErrNoCriteria):
		return fmt.Sprintf("Course %d has no completion criteria.", courseID)
	case errors.Is(err, app.ErrUnsupportedFormat):
		return "This export format is not available."
	default:
		return "The report could not be generated. Please try again later."
	}
}
