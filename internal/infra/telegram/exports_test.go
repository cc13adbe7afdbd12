package telegram

import (
	"fmt"
	"strings"
	"testing"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCallbackRoundTrip(t *testing.T) {
	data := exportCallbackData(report.KindCompletion, report.FormatXLSX, 42)
	assert.Equal(t, "exp|completion|xlsx|42", data)

	kind, format, id, err := parseExportCallback(data)
	require.NoError(t, err)
	assert.Equal(t, report.KindCompletion, kind)
	assert.Equal(t, report.FormatXLSX, format)
	assert.Equal(t, int64(42), id)

	_, _, _, err = parseExportCallback("\f" + data)
	assert.NoError(t, err)
}

func TestParseExportCallback_Rejects(t *testing.T) {
	for _, data := range []string{
		"",
		"ans_yes_12",
		"exp|progress|csv",
		"exp|grades|csv|1",
		"exp|progress||1",
		"exp|progress|docx|1",
		"exp|progress|csv|zero",
		"exp|progress|csv|-3",
	} {
		_, _, _, err := parseExportCallback(data)
		assert.ErrorIs(t, err, errBadCallback, data)
	}
}

func TestFormatKeyboard(t *testing.T) {
	markup := formatKeyboard(report.KindProgress, 7)

	require.Len(t, markup.InlineKeyboard, 1)
	buttons := markup.InlineKeyboard[0]
	require.Len(t, buttons, len(botFormats))
	for _, b := range buttons {
		assert.True(t, strings.HasPrefix(b.Data, "exp|progress|"))
		assert.LessOrEqual(t, len(b.Data), 64, "telegram limits callback data to 64 bytes")
	}
	assert.Equal(t, "PDF", buttons[3].Text)
	assert.Equal(t, "exp|progress|pdf|7", buttons[3].Data)
}

func TestParseCourseArg(t *testing.T) {
	id, err := parseCourseArg([]string{"15"})
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	for _, args := range [][]string{nil, {"1", "2"}, {"abc"}, {"0"}} {
		_, err := parseCourseArg(args)
		assert.Error(t, err)
	}
}

func TestExportErrorMessage(t *testing.T) {
	assert.Equal(t, msgUnauthorized, exportErrorMessage(app.ErrAdminNotAuthorized, 3))
	assert.Equal(t, "Course 3 was not found.", exportErrorMessage(fmt.Errorf("wrap: %w", course.ErrNotFound), 3))
	assert.Contains(t, exportErrorMessage(app.ErrNoCriteria, 3), "no completion criteria")
	assert.Contains(t, exportErrorMessage(fmt.Errorf("db down"), 3), "try again later")
}

func TestAdminHelp(t *testing.T) {
	help := adminHelp()
	assert.Contains(t, help, "/progress <CourseID>")
	assert.Contains(t, help, "/completion <CourseID>")
}
