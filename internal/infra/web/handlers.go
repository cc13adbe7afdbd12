package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ReportService builds and renders reports for the HTTP handlers.
type ReportService interface {
	Build(ctx context.Context, kind report.Kind, q app.ReportQuery) (*report.Report, error)
	Renderer(format report.Format) (app.Renderer, error)
	Render(ctx context.Context, w io.Writer, rep *report.Report, format report.Format) error
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

// ReportHandler serves the progress and completion reports.
type ReportHandler struct {
	reports  ReportService
	validate *validator.Validate
	logger   *logrus.Entry
}

func NewReportHandler(reports ReportService, logger *logrus.Entry) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		validate: newValidator(),
		logger:   logger,
	}
}

func (h *ReportHandler) Progress(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.KindProgress)
}

func (h *ReportHandler) Completion(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.KindCompletion)
}

func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, kind report.Kind) {
	params, err := parseReportParams(h.validate, r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	format, _ := report.ParseFormat(params.Format)
	// Resolve the renderer before building so a disabled format fails fast.
	var renderer app.Renderer
	if format != report.FormatJSON {
		if renderer, err = h.reports.Renderer(format); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	interactive := format == report.FormatHTML || format == report.FormatJSON
	rep, err := h.reports.Build(r.Context(), kind, app.ReportQuery{
		CourseID:     params.Course,
		Sort:         course.ParseSortField(params.Sort),
		FirstInitial: params.SIFirst,
		LastInitial:  params.SILast,
		Start:        params.Start,
		PerPage:      params.PerPage,
		All:          !interactive,
		BaseURL:      r.URL,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if format == report.FormatJSON {
		render.JSON(w, r, rep)
		return
	}

	var buf bytes.Buffer
	if err := h.reports.Render(r.Context(), &buf, rep, format); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	if !interactive {
		name := app.FileName(kind, rep.CourseShortName, renderer.Extension())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WithError(err).Warn("Failed to write report response")
	}
}

// writeError maps domain errors to HTTP statuses.
func (h *ReportHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var perr *paramError
	switch {
	case errors.As(err, &perr):
		status = http.StatusBadRequest
		resp.Error = "invalid parameters"
		resp.Fields = perr.Fields
	case errors.Is(err, app.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, course.ErrNotFound):
		status = http.StatusNotFound
		resp.Error = course.ErrNotFound.Error()
	case errors.Is(err, app.ErrCompletionNotEnabled),
		errors.Is(err, app.ErrNoActivities),
		errors.Is(err, app.ErrNoCriteria):
		status = http.StatusUnprocessableEntity
	default:
		resp.Error = "internal server error"
	}

	entry := h.logger.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"status":     status,
		"path":       r.URL.Path,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Report request failed")
	} else {
		entry.Info("Report request rejected")
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
