package export

import (
	"time"

	"course_completion_report/internal/domain/report"
)

var (
	done    = report.Cell{Primary: "Completed", Secondary: "5 March 2024, 2:30 PM"}
	notDone = report.Cell{Primary: "Not completed"}
)

func progressReport() *report.Report {
	return &report.Report{
		Kind:            report.KindProgress,
		CourseID:        7,
		CourseName:      "Algebra 101",
		CourseShortName: "ALG 101",
		IdentityFields:  []string{"email"},
		HeaderRows: []report.HeaderRow{{
			Caption: "Sections",
			Spans:   []report.Span{{Label: "General", Count: 1}, {Label: "Intro", Count: 2}},
		}},
		Columns: []report.Column{
			{ID: 10, Name: "Welcome", ModName: "page"},
			{ID: 11, Name: "Quiz 1", ModName: "quiz"},
			{ID: 12, Name: "Essay, draft", ModName: "assign"},
		},
		Rows: []report.Row{
			{UserID: 1, FullName: "Ann Lee", Identity: []string{"ann@example.com"}, Cells: []report.Cell{done, notDone, notDone}},
			{UserID: 2, FullName: "Bob Ray", Identity: []string{"bob@example.com"}, Cells: []report.Cell{done, done, done}},
		},
		Total:       2,
		PerPage:     25,
		Sort:        "lastname",
		GeneratedAt: time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
}

func completionReport() *report.Report {
	summary := done
	return &report.Report{
		Kind:            report.KindCompletion,
		CourseID:        7,
		CourseName:      "Algebra 101",
		CourseShortName: "ALG 101",
		HeaderRows: []report.HeaderRow{
			{Caption: "Criteria group", Trailing: "Course", Spans: []report.Span{{Label: "Activity completion", Count: 2}}},
			{Caption: "Aggregation method", Trailing: "All", Spans: []report.Span{{Label: "Any", Count: 2}}},
		},
		Columns: []report.Column{{ID: 1, Name: "Quiz 1"}, {ID: 2, Name: "Essay"}},
		Rows: []report.Row{
			{UserID: 1, FullName: "Ann Lee", Cells: []report.Cell{done, done}, Summary: &summary},
			{UserID: 2, FullName: "Bob Ray", Cells: []report.Cell{notDone, notDone}},
		},
		SummaryHeader: "Course complete",
		Total:         2,
		PerPage:       25,
		Sort:          "lastname",
	}
}
