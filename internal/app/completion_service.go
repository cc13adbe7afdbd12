package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"course_completion_report/internal/domain/completion"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"github.com/sirupsen/logrus"
)

const (
	captionCriteriaGroup = "Criteria group"
	captionAggregation   = "Aggregation method"
	summaryCourse        = "Course"
	summaryHeader        = "Course complete"
	noAggregation        = "-"
)

// CompletionService builds the course completion report.
type CompletionService struct {
	courseRepo     course.Repository
	completionRepo completion.Repository
	settings       ReportSettings
	logger         *logrus.Entry
}

func NewCompletionService(cr course.Repository, pr completion.Repository, settings ReportSettings, logger *logrus.Entry) *CompletionService {
	return &CompletionService{
		courseRepo:     cr,
		completionRepo: pr,
		settings:       settings,
		logger:         logger.WithField("report", report.KindCompletion),
	}
}

// Build assembles the completion report: one column per criterion grouped by
// criteria type, and a trailing course completion column.
func (s *CompletionService) Build(ctx context.Context, q ReportQuery) (*report.Report, error) {
	log := s.logger.WithField("course_id", q.CourseID)

	c, err := loadCourse(ctx, s.courseRepo, q.CourseID)
	if err != nil {
		return nil, err
	}

	criteria, err := s.completionRepo.ListCriteria(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completion criteria: %w", err)
	}
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}
	completion.SortForDisplay(criteria)

	methods, err := s.completionRepo.GetAggregationMethods(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregation methods: %w", err)
	}

	page, err := loadUsers(ctx, s.courseRepo, s.settings, q)
	if err != nil {
		return nil, err
	}

	records, err := s.completionRepo.ListActivityCompletions(ctx, c.ID, page.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity completions: %w", err)
	}
	critDone, err := s.completionRepo.ListCriteriaCompletions(ctx, c.ID, page.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria completions: %w", err)
	}
	courseDone, err := s.completionRepo.ListCourseCompletions(ctx, c.ID, page.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list course completions: %w", err)
	}
	names, err := overrideNames(ctx, s.courseRepo, records)
	if err != nil {
		return nil, err
	}

	progress := completion.ByUser(records)
	critIndex := make(map[int64]map[int64]time.Time)
	for _, cc := range critDone {
		if critIndex[cc.UserID] == nil {
			critIndex[cc.UserID] = make(map[int64]time.Time)
		}
		critIndex[cc.UserID][cc.CriterionID] = cc.TimeCompleted
	}
	courseIndex := make(map[int64]time.Time, len(courseDone))
	for _, cc := range courseDone {
		courseIndex[cc.UserID] = cc.TimeCompleted
	}
	cells := &cellFormatter{layout: s.settings.DateFormat, location: s.settings.Location, names: names}

	rep := newReport(report.KindCompletion, c, s.settings, q, page)
	rep.SummaryHeader = summaryHeader
	headerRows, err := criteriaHeaderRows(criteria, methods)
	if err != nil {
		return nil, err
	}
	rep.HeaderRows = headerRows
	for _, cr := range criteria {
		rep.Columns = append(rep.Columns, report.Column{ID: cr.ID, Name: criterionName(cr)})
	}

	rep.Rows = make([]report.Row, 0, len(page.users))
	for _, u := range page.users {
		row := newRow(u, s.settings.IdentityFields, len(criteria))
		for _, cr := range criteria {
			if cr.Type == completion.CriteriaActivity && cr.ModuleID != nil {
				rec, found := progress[u.ID][*cr.ModuleID]
				row.Cells = append(row.Cells, cells.activityCell(rec, found))
				continue
			}
			var at *time.Time
			if ts, ok := critIndex[u.ID][cr.ID]; ok {
				at = &ts
			}
			row.Cells = append(row.Cells, cells.completedCell(at))
		}

		var done *time.Time
		if ts, ok := courseIndex[u.ID]; ok {
			done = &ts
		}
		summary := cells.completedCell(done)
		row.Summary = &summary
		rep.Rows = append(rep.Rows, row)
	}

	log.WithFields(logrus.Fields{
		"users":    len(rep.Rows),
		"total":    page.total,
		"criteria": len(criteria),
	}).Debug("Completion report built")
	return rep, nil
}

// criteriaHeaderRows computes the criteria group and aggregation method
// rows. Criteria must already be in display order so that each type forms a
// single run.
func criteriaHeaderRows(criteria []completion.Criterion, methods completion.AggregationMethods) ([]report.HeaderRow, error) {
	codes := make([]string, len(criteria))
	for i, cr := range criteria {
		codes[i] = strconv.Itoa(int(cr.Type))
	}
	if !report.Contiguous(codes, nil) {
		return nil, errors.New("completion criteria are not grouped by type")
	}

	groups := report.HeaderRow{Caption: captionCriteriaGroup, Trailing: summaryCourse}
	aggregation := report.HeaderRow{Caption: captionAggregation, Trailing: methods.OverallMethod().String()}
	for _, span := range report.Spans(codes, nil) {
		code, _ := strconv.Atoi(span.Label)
		ct := completion.CriteriaType(code)

		groups.Spans = append(groups.Spans, report.Span{Label: ct.Title(), Count: span.Count})

		method := noAggregation
		if ct.HasAggregation() {
			method = methods.For(ct).String()
		}
		aggregation.Spans = append(aggregation.Spans, report.Span{Label: method, Count: span.Count})
	}
	return []report.HeaderRow{groups, aggregation}, nil
}

func criterionName(cr completion.Criterion) string {
	if cr.Title != "" {
		return cr.Title
	}
	return cr.Type.Title()
}
