package export

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/report"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; font-size: 13px; }
table.report { border-collapse: collapse; }
table.report th, table.report td { border: 1px solid #ccc; padding: 4px 6px; vertical-align: top; }
table.report th { background: #f3f3f3; }
td.completed { background: #e6f4ea; }
td.notcompleted { background: #fbeaea; }
span.date { display: block; color: #666; font-size: 11px; }
.bar a, .bar strong { margin-right: 4px; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
{{- if .Interactive}}
<div class="bar initials">First name: {{range .FirstInitials}}{{if .Current}}<strong>{{.Label}}</strong>{{else}}<a href="{{.URL}}">{{.Label}}</a>{{end}} {{end}}</div>
<div class="bar initials">Surname: {{range .LastInitials}}{{if .Current}}<strong>{{.Label}}</strong>{{else}}<a href="{{.URL}}">{{.Label}}</a>{{end}} {{end}}</div>
{{- end}}
{{- if .Paging}}
<div class="bar paging">{{range .Paging}}{{if .Current}}<strong>{{.Label}}</strong>{{else if .URL}}<a href="{{.URL}}">{{.Label}}</a>{{else}}<span>{{.Label}}</span>{{end}} {{end}}</div>
{{- end}}
{{- if not .Rows}}
<p class="empty">No users found.</p>
{{- else}}
<table class="report">
<thead>
{{- range .HeaderRows}}
<tr><th colspan="{{$.Lead}}">{{.Caption}}</th>{{range .Spans}}<th colspan="{{.Count}}">{{.Label}}</th>{{end}}{{if $.Summary}}<th>{{.Trailing}}</th>{{end}}</tr>
{{- end}}
<tr><th>{{.NameHeader}}</th>{{range .IdentityLabels}}<th>{{.}}</th>{{end}}{{range .Columns}}<th{{if .ModName}} class="mod-{{.ModName}}"{{end}}>{{.Name}}</th>{{end}}{{if .Summary}}<th>{{.Summary}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><th>{{.FullName}}</th>{{range .Identity}}<td>{{.}}</td>{{end}}{{range .Groups}}{{template "cell" .}}{{end}}{{with .Summary}}{{template "cell" .}}{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- end}}
</body>
</html>
{{define "cell"}}<td{{if gt .Span 1}} colspan="{{.Span}}"{{end}} class="{{stateClass .Value}}">{{.Value.Primary}}{{with .Value.Secondary}}<span class="date">{{.}}</span>{{end}}</td>{{end}}`

type filterLink struct {
	Label   string
	URL     string
	Current bool
}

type htmlRow struct {
	FullName string
	Identity []string
	Groups   []report.Group
	Summary  *report.Group
}

type htmlView struct {
	Title          string
	Interactive    bool
	FirstInitials  []filterLink
	LastInitials   []filterLink
	Paging         []report.PageLink
	HeaderRows     []report.HeaderRow
	Lead           int
	NameHeader     string
	IdentityLabels []string
	Columns        []report.Column
	Summary        string
	Rows           []htmlRow
}

// HTMLRenderer renders the report as a standalone HTML page. Runs of equal
// cells share one td with a colspan.
type HTMLRenderer struct {
	tmpl *template.Template
	// Static omits the filter bars and paging, for documents that are not
	// browsed, such as PDF input.
	Static bool
}

func NewHTMLRenderer() *HTMLRenderer {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"stateClass": stateClass,
	}).Parse(pageTemplate))
	return &HTMLRenderer{tmpl: tmpl}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (r *HTMLRenderer) Extension() string   { return "html" }

func (r *HTMLRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	view := htmlView{
		Title:          rep.Title(),
		Interactive:    !r.Static,
		HeaderRows:     rep.HeaderRows,
		Lead:           leadColumns(rep),
		NameHeader:     headerName,
		IdentityLabels: identityLabels(rep),
		Columns:        rep.Columns,
		Summary:        rep.SummaryHeader,
		Rows:           make([]htmlRow, 0, len(rep.Rows)),
	}
	if !r.Static {
		view.FirstInitials = initialLinks(rep, "sifirst", rep.FirstInitial)
		view.LastInitials = initialLinks(rep, "silast", rep.LastInitial)
		view.Paging = rep.Paging
	}

	for _, row := range rep.Rows {
		hr := htmlRow{FullName: row.FullName, Identity: row.Identity, Groups: row.Groups()}
		if row.Summary != nil {
			hr.Summary = &report.Group{Value: *row.Summary, Span: 1}
		}
		view.Rows = append(view.Rows, hr)
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to execute report template: %w", err)
	}
	return nil
}

func stateClass(c report.Cell) string {
	if c.Primary == "" || strings.HasPrefix(c.Primary, "Not completed") {
		return "notcompleted"
	}
	return "completed"
}

// initialLinks builds one filter bar. Picking a letter keeps the other
// filter and the sort, and returns to the first page.
func initialLinks(rep *report.Report, param, current string) []filterLink {
	letters := append([]string{"All"}, app.Initials()...)
	links := make([]filterLink, 0, len(letters))
	for _, letter := range letters {
		value := letter
		if letter == "All" {
			value = ""
		}

		q := url.Values{}
		q.Set("course", strconv.FormatInt(rep.CourseID, 10))
		if rep.Sort != "" {
			q.Set("sort", rep.Sort)
		}
		if rep.PerPage > 0 {
			q.Set("perpage", strconv.Itoa(rep.PerPage))
		}
		if rep.FirstInitial != "" {
			q.Set("sifirst", rep.FirstInitial)
		}
		if rep.LastInitial != "" {
			q.Set("silast", rep.LastInitial)
		}
		if value == "" {
			q.Del(param)
		} else {
			q.Set(param, value)
		}

		links = append(links, filterLink{
			Label:   letter,
			URL:     "?" + q.Encode(),
			Current: value == current,
		})
	}
	return links
}
