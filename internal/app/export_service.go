package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/observability"

	"github.com/sirupsen/logrus"
)

// Renderer writes a report in one output format.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(ctx context.Context, w io.Writer, rep *report.Report) error
}

// ExportFile is a rendered report ready to be downloaded or sent.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// Exporter builds and renders whole-course report files.
type Exporter interface {
	Export(ctx context.Context, kind report.Kind, format report.Format, courseID int64) (*ExportFile, error)
}

// ExportService ties report builders to renderers.
type ExportService struct {
	builders  map[report.Kind]ReportBuilder
	renderers map[report.Format]Renderer
	logger    *logrus.Entry
}

func NewExportService(builders map[report.Kind]ReportBuilder, renderers map[report.Format]Renderer, logger *logrus.Entry) *ExportService {
	return &ExportService{
		builders:  builders,
		renderers: renderers,
		logger:    logger,
	}
}

// Build runs the builder registered for kind.
func (s *ExportService) Build(ctx context.Context, kind report.Kind, q ReportQuery) (*report.Report, error) {
	b, ok := s.builders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
	return b.Build(ctx, q)
}

// Renderer returns the renderer registered for format.
func (s *ExportService) Renderer(format report.Format) (Renderer, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return r, nil
}

// Render writes rep in the given format and records render metrics.
func (s *ExportService) Render(ctx context.Context, w io.Writer, rep *report.Report, format report.Format) error {
	r, err := s.Renderer(format)
	if err != nil {
		return err
	}

	started := time.Now()
	err = r.Render(ctx, w, rep)
	observability.RecordRender(string(rep.Kind), string(format), time.Since(started), err)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"report":    rep.Kind,
			"format":    format,
			"course_id": rep.CourseID,
		}).Error("Failed to render report")
		return fmt.Errorf("failed to render %s report as %q: %w", rep.Kind, format, err)
	}
	return nil
}

// Export builds the full, unpaged report for a course and renders it.
func (s *ExportService) Export(ctx context.Context, kind report.Kind, format report.Format, courseID int64) (*ExportFile, error) {
	r, err := s.Renderer(format)
	if err != nil {
		return nil, err
	}

	rep, err := s.Build(ctx, kind, ReportQuery{CourseID: courseID, All: true})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.Render(ctx, &buf, rep, format); err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        FileName(kind, rep.CourseShortName, r.Extension()),
		ContentType: r.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9-]`)

// FileName returns the attachment name of an export, e.g.
// progress.alg_101.csv for course ALG 101.
func FileName(kind report.Kind, shortName, ext string) string {
	name := unsafeFileChars.ReplaceAllString(strings.ToLower(shortName), "_")
	return fmt.Sprintf("%s.%s.%s", kind, name, ext)
}
