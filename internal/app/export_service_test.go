package app

import (
	"bytes"
	"context"
	"testing"

	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExportService(b *fakeBuilder, r *fakeRenderer) *ExportService {
	return NewExportService(
		map[report.Kind]ReportBuilder{report.KindProgress: b},
		map[report.Format]Renderer{report.FormatCSV: r},
		logger.Component("test"),
	)
}

func TestExportService_Export(t *testing.T) {
	b := &fakeBuilder{rep: &report.Report{Kind: report.KindProgress, CourseID: 1, CourseName: "Algebra", CourseShortName: "ALG 101"}}
	svc := newTestExportService(b, &fakeRenderer{ext: "csv"})

	file, err := svc.Export(context.Background(), report.KindProgress, report.FormatCSV, 1)
	require.NoError(t, err)

	assert.Equal(t, "progress.alg_101.csv", file.Name)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.Equal(t, "Activity completion: Algebra", string(file.Content))

	require.Len(t, b.queries, 1)
	assert.True(t, b.queries[0].All)
	assert.Equal(t, int64(1), b.queries[0].CourseID)
}

func TestExportService_Export_Errors(t *testing.T) {
	b := &fakeBuilder{rep: &report.Report{Kind: report.KindProgress}}
	svc := newTestExportService(b, &fakeRenderer{ext: "csv"})

	_, err := svc.Export(context.Background(), report.KindProgress, report.FormatPDF, 1)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, b.queries, "format is checked before building")

	_, err = svc.Export(context.Background(), report.KindCompletion, report.FormatCSV, 1)
	assert.Error(t, err)

	b.err = ErrNoActivities
	_, err = svc.Export(context.Background(), report.KindProgress, report.FormatCSV, 1)
	assert.ErrorIs(t, err, ErrNoActivities)
}

func TestExportService_Render_Failure(t *testing.T) {
	svc := newTestExportService(&fakeBuilder{}, &fakeRenderer{ext: "csv", err: errBoom})

	var buf bytes.Buffer
	err := svc.Render(context.Background(), &buf, &report.Report{Kind: report.KindProgress}, report.FormatCSV)
	assert.ErrorIs(t, err, errBoom)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "progress.alg_101.csv", FileName(report.KindProgress, "ALG 101", "csv"))
	assert.Equal(t, "completion.bio-2_x__.xlsx", FileName(report.KindCompletion, "Bio-2/X é", "xlsx"))
	assert.Equal(t, "progress..pdf", FileName(report.KindProgress, "", "pdf"))
}
