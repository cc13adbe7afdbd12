package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"course_completion_report/internal/domain/completion"
	"course_completion_report/internal/domain/course"
	"course_completion_report/internal/domain/report"

	"gopkg.in/telebot.v3"
)

type fakeCourseRepo struct {
	courses  map[int64]*course.Course
	users    map[int64]course.User // everyone, enrolled or not
	enrolled []int64
	sections []course.Section
	filters  []course.UserFilter
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*course.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) GetUserByID(_ context.Context, id int64) (*course.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, course.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeCourseRepo) ListSections(context.Context, int64) ([]course.Section, error) {
	return f.sections, nil
}

func (f *fakeCourseRepo) matching(filter course.UserFilter) []course.User {
	var out []course.User
	for _, id := range f.enrolled {
		u := f.users[id]
		if !hasPrefixFold(u.FirstName, filter.FirstInitial) || !hasPrefixFold(u.LastName, filter.LastInitial) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if filter.Sort == course.SortFirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out
}

func (f *fakeCourseRepo) CountTrackedUsers(_ context.Context, _ int64, filter course.UserFilter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeCourseRepo) ListTrackedUsers(_ context.Context, _ int64, filter course.UserFilter) ([]course.User, error) {
	f.filters = append(f.filters, filter)
	users := f.matching(filter)
	if filter.Limit <= 0 {
		return users, nil
	}
	if filter.Offset >= len(users) {
		return nil, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(users) {
		end = len(users)
	}
	return users[filter.Offset:end], nil
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

type fakeCompletionRepo struct {
	activities  []completion.Activity
	records     []completion.Record
	criteria    []completion.Criterion
	methods     completion.AggregationMethods
	critDone    []completion.CriterionCompletion
	courseDone  []completion.CourseCompletion
	activityErr error
}

func (f *fakeCompletionRepo) ListTrackedActivities(context.Context, int64) ([]completion.Activity, error) {
	return f.activities, f.activityErr
}

func (f *fakeCompletionRepo) ListActivityCompletions(_ context.Context, _ int64, userIDs []int64) ([]completion.Record, error) {
	var out []completion.Record
	for _, r := range f.records {
		if containsID(userIDs, r.UserID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) ListCriteria(context.Context, int64) ([]completion.Criterion, error) {
	return append([]completion.Criterion(nil), f.criteria...), nil
}

func (f *fakeCompletionRepo) GetAggregationMethods(context.Context, int64) (completion.AggregationMethods, error) {
	return f.methods, nil
}

func (f *fakeCompletionRepo) ListCriteriaCompletions(_ context.Context, _ int64, userIDs []int64) ([]completion.CriterionCompletion, error) {
	var out []completion.CriterionCompletion
	for _, c := range f.critDone {
		if containsID(userIDs, c.UserID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) ListCourseCompletions(_ context.Context, _ int64, userIDs []int64) ([]completion.CourseCompletion, error) {
	var out []completion.CourseCompletion
	for _, c := range f.courseDone {
		if containsID(userIDs, c.UserID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var (
	testTime     = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	testTimeText = "5 March 2024, 2:30 PM"
)

func testSettings() ReportSettings {
	return ReportSettings{
		PageSize:       25,
		DateFormat:     "2 January 2006, 3:04 PM",
		Location:       time.UTC,
		IdentityFields: []string{"email"},
		Now:            func() time.Time { return testTime },
	}
}

// newFakeCourse seeds course 1 with three enrolled users and a teacher who
// is not enrolled.
func newFakeCourse() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: map[int64]*course.Course{
			1: {ID: 1, FullName: "Algebra 101", ShortName: "ALG 101", CompletionEnabled: true},
			2: {ID: 2, FullName: "History", ShortName: "HIST", CompletionEnabled: false},
		},
		users: map[int64]course.User{
			1: {ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"},
			2: {ID: 2, FirstName: "Bob", LastName: "Ray", Email: "bob@example.com"},
			3: {ID: 3, FirstName: "Cid", LastName: "Ames", Email: "cid@example.com"},
			9: {ID: 9, FirstName: "Tess", LastName: "Teacher"},
		},
		enrolled: []int64{1, 2, 3},
		sections: []course.Section{
			{ID: 100, Number: 0},
			{ID: 101, Number: 1, Name: "Intro"},
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

type fakeBuilder struct {
	rep     *report.Report
	err     error
	queries []ReportQuery
}

func (f *fakeBuilder) Build(_ context.Context, q ReportQuery) (*report.Report, error) {
	f.queries = append(f.queries, q)
	return f.rep, f.err
}

type fakeRenderer struct {
	ext string
	err error
}

func (f *fakeRenderer) ContentType() string { return "text/plain" }
func (f *fakeRenderer) Extension() string   { return f.ext }

func (f *fakeRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, rep.Title())
	return err
}

type fakeExporter struct {
	errs  map[string]error // keyed by kind
	calls []string
}

func (f *fakeExporter) Export(_ context.Context, kind report.Kind, format report.Format, courseID int64) (*ExportFile, error) {
	f.calls = append(f.calls, string(kind))
	if err := f.errs[string(kind)]; err != nil {
		return nil, err
	}
	return &ExportFile{
		Name:        FileName(kind, "c", string(format)),
		ContentType: "text/csv",
		Content:     []byte("data"),
	}, nil
}

type sentDocument struct {
	chatID   int64
	fileName string
	content  string
	caption  string
}

type fakeTelegramClient struct {
	documents []sentDocument
	messages  []string
	err       error
}

func (f *fakeTelegramClient) SendMessage(_ int64, text string, _ *telebot.SendOptions) error {
	f.messages = append(f.messages, text)
	return f.err
}

func (f *fakeTelegramClient) SendDocument(chatID int64, fileName string, content io.Reader, caption string) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.documents = append(f.documents, sentDocument{chatID: chatID, fileName: fileName, content: string(b), caption: caption})
	return nil
}

var errBoom = errors.New("boom")
