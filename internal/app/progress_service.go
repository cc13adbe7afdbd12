package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"course_completion_report/internal/domain/completion"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"github.com/sirupsen/logrus"
)

// ReportSettings controls how reports are windowed and formatted.
type ReportSettings struct {
	PageSize       int
	DateFormat     string
	Location       *time.Location
	IdentityFields []string
	Now            func() time.Time
}

func (s ReportSettings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ReportQuery selects a course and the slice of its users to report on.
type ReportQuery struct {
	CourseID     int64
	Sort         course.SortField
	FirstInitial string
	LastInitial  string
	Start        int
	PerPage      int  // 0 uses the configured page size
	All          bool // ignore Start/PerPage, used by file exports
	BaseURL      *url.URL
}

// ReportBuilder is implemented by the progress and completion services.
type ReportBuilder interface {
	Build(ctx context.Context, q ReportQuery) (*report.Report, error)
}

// usersPage holds the filtered users of one report request.
type usersPage struct {
	total   int
	perPage int
	users   []course.User
	ids     []int64
}

func loadUsers(ctx context.Context, repo course.Repository, settings ReportSettings, q ReportQuery) (*usersPage, error) {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = settings.PageSize
	}

	filter := course.UserFilter{
		FirstInitial: q.FirstInitial,
		LastInitial:  q.LastInitial,
		Sort:         q.Sort,
	}
	total, err := repo.CountTrackedUsers(ctx, q.CourseID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tracked users: %w", err)
	}

	if !q.All {
		filter.Offset = q.Start
		filter.Limit = perPage
	}
	users, err := repo.ListTrackedUsers(ctx, q.CourseID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked users: %w", err)
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return &usersPage{total: total, perPage: perPage, users: users, ids: ids}, nil
}

// loadCourse fetches a course and checks that completion tracking is on.
func loadCourse(ctx context.Context, repo course.Repository, id int64) (*course.Course, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	if !c.CompletionEnabled {
		return nil, ErrCompletionNotEnabled
	}
	return c, nil
}

// newReport fills the parts shared by both report kinds.
func newReport(kind report.Kind, c *course.Course, settings ReportSettings, q ReportQuery, page *usersPage) *report.Report {
	rep := &report.Report{
		Kind:            kind,
		CourseID:        c.ID,
		CourseName:      c.FullName,
		CourseShortName: c.ShortName,
		IdentityFields:  settings.IdentityFields,
		Total:           page.total,
		Start:           q.Start,
		PerPage:         page.perPage,
		Sort:            string(course.ParseSortField(string(q.Sort))),
		FirstInitial:    q.FirstInitial,
		LastInitial:     q.LastInitial,
		GeneratedAt:     settings.now(),
	}
	if q.All {
		rep.Start = 0
	} else {
		rep.Paging = BuildPaging(page.total, page.perPage, q.Start, q.BaseURL)
	}
	return rep
}

func newRow(u course.User, identityFields []string, width int) report.Row {
	row := report.Row{
		UserID:   u.ID,
		FullName: u.FullName(),
		Cells:    make([]report.Cell, 0, width),
	}
	for _, f := range identityFields {
		row.Identity = append(row.Identity, u.IdentityField(f))
	}
	return row
}

// ProgressService builds the activity completion (progress) report.
type ProgressService struct {
	courseRepo     course.Repository
	completionRepo completion.Repository
	settings       ReportSettings
	logger         *logrus.Entry
}

func NewProgressService(cr course.Repository, pr completion.Repository, settings ReportSettings, logger *logrus.Entry) *ProgressService {
	return &ProgressService{
		courseRepo:     cr,
		completionRepo: pr,
		settings:       settings,
		logger:         logger.WithField("report", report.KindProgress),
	}
}

// Build assembles the progress report: one column per tracked activity,
// grouped under section headers, one row per tracked user.
func (s *ProgressService) Build(ctx context.Context, q ReportQuery) (*report.Report, error) {
	log := s.logger.WithField("course_id", q.CourseID)

	c, err := loadCourse(ctx, s.courseRepo, q.CourseID)
	if err != nil {
		return nil, err
	}

	activities, err := s.completionRepo.ListTrackedActivities(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked activities: %w", err)
	}
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}

	sections, err := s.courseRepo.ListSections(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	sectionNames := make(map[string]string, len(sections))
	for _, sec := range sections {
		sectionNames[strconv.Itoa(sec.Number)] = sec.DisplayName()
	}

	page, err := loadUsers(ctx, s.courseRepo, s.settings, q)
	if err != nil {
		return nil, err
	}

	records, err := s.completionRepo.ListActivityCompletions(ctx, c.ID, page.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity completions: %w", err)
	}
	names, err := overrideNames(ctx, s.courseRepo, records)
	if err != nil {
		return nil, err
	}
	progress := completion.ByUser(records)
	cells := &cellFormatter{layout: s.settings.DateFormat, location: s.settings.Location, names: names}

	rep := newReport(report.KindProgress, c, s.settings, q, page)

	sectionLabels := make([]string, len(activities))
	for i, a := range activities {
		sectionLabels[i] = strconv.Itoa(a.SectionNumber)
		rep.Columns = append(rep.Columns, report.Column{ID: a.ID, Name: a.Name, ModName: a.ModName})
	}
	if !report.Contiguous(sectionLabels, nil) {
		return nil, fmt.Errorf("activities of course %d are not ordered by section", c.ID)
	}
	spans := report.Spans(sectionLabels, nil)
	for i, span := range spans {
		name, ok := sectionNames[span.Label]
		if !ok {
			n, _ := strconv.Atoi(span.Label)
			name = course.Section{Number: n}.DisplayName()
		}
		spans[i].Label = name
	}
	rep.HeaderRows = []report.HeaderRow{{Caption: "Sections", Spans: spans}}

	rep.Rows = make([]report.Row, 0, len(page.users))
	for _, u := range page.users {
		row := newRow(u, s.settings.IdentityFields, len(activities))
		userProgress := progress[u.ID]
		for _, a := range activities {
			rec, found := userProgress[a.ID]
			row.Cells = append(row.Cells, cells.activityCell(rec, found))
		}
		rep.Rows = append(rep.Rows, row)
	}

	log.WithFields(logrus.Fields{
		"users":      len(rep.Rows),
		"total":      page.total,
		"activities": len(activities),
	}).Debug("Progress report built")
	return rep, nil
}
