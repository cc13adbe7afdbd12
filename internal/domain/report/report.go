package report

import "time"

// Kind names one of the report views.
type Kind string

const (
	KindProgress   Kind = "progress"
	KindCompletion Kind = "completion"
)

// Format is an output format accepted by the export sinks.
type Format string

const (
	FormatHTML     Format = ""
	FormatCSV      Format = "csv"
	FormatExcelCSV Format = "excelcsv"
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatJSON     Format = "json"
)

// ParseFormat validates a raw format parameter.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatHTML, FormatCSV, FormatExcelCSV, FormatPDF, FormatXLSX, FormatJSON:
		return f, true
	}
	return "", false
}

// Column is one activity or criterion column of a report.
type Column struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	ModName string `json:"modname,omitempty"`
}

// HeaderRow is a row of column-spanning header labels above the columns.
// Trailing labels the summary column, if the report has one.
type HeaderRow struct {
	Caption  string `json:"caption"`
	Spans    []Span `json:"spans"`
	Trailing string `json:"trailing,omitempty"`
}

// Row holds one user's cells, one per report column, in column order.
type Row struct {
	UserID   int64    `json:"userid"`
	FullName string   `json:"fullname"`
	Identity []string `json:"identity,omitempty"`
	Cells    []Cell   `json:"cells"`
	Summary  *Cell    `json:"summary,omitempty"`
}

// Groups returns the row's cells compressed for colspan rendering.
func (r Row) Groups() []Group {
	return Compress(r.Cells)
}

// PageLink is one entry of a paging bar. Current links have no URL.
type PageLink struct {
	Label   string `json:"label"`
	Start   int    `json:"start"`
	URL     string `json:"url,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// Report is a fully shaped progress or completion report, ready for any sink.
type Report struct {
	Kind            Kind        `json:"kind"`
	CourseID        int64       `json:"courseid"`
	CourseName      string      `json:"coursename"`
	CourseShortName string      `json:"courseshortname"`
	IdentityFields  []string    `json:"identityfields,omitempty"`
	HeaderRows      []HeaderRow `json:"headerrows,omitempty"`
	Columns         []Column    `json:"columns"`
	Rows            []Row       `json:"rows"`
	SummaryHeader   string      `json:"summaryheader,omitempty"`
	Total           int         `json:"total"`
	Start           int         `json:"start"`
	PerPage         int         `json:"perpage"`
	Sort            string      `json:"sort"`
	FirstInitial    string      `json:"sifirst,omitempty"`
	LastInitial     string      `json:"silast,omitempty"`
	Paging          []PageLink  `json:"paging,omitempty"`
	GeneratedAt     time.Time   `json:"generatedat"`
}

// Title is the human readable heading of the report.
func (r *Report) Title() string {
	switch r.Kind {
	case KindProgress:
		return "Activity completion: " + r.CourseName
	case KindCompletion:
		return "Course completion: " + r.CourseName
	}
	return r.CourseName
}
