package export

import (
	"context"
	"fmt"
	"io"

	"course_completion_report/internal/domain/report"

	"github.com/go-pdf/fpdf"
)

// PDF layout in millimetres.
const (
	pdfMargin      = 10.0
	pdfLineHeight  = 4.5
	pdfNameWidth   = 45.0
	pdfIdentWidth  = 35.0
	pdfMinColWidth = 8.0
	pdfMaxColWidth = 30.0
	pdfFontSize    = 7.0
)

// PDFRenderer draws the report as a landscape table. Header spans and runs
// of equal cells are drawn as single cells span columns wide. Reports wider
// than a page are split into parts, each repeating the user columns.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string   { return "pdf" }

func (PDFRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	t := newPDFTable(rep)
	t.draw()
	if err := t.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// columnRange is a slice [from, to) of the report columns, where index
// len(rep.Columns) stands for the summary column.
type columnRange struct {
	from, to int
}

type pdfTable struct {
	pdf *fpdf.Fpdf
	rep *report.Report
	tr  func(string) string

	leadWidth float64
	colWidth  float64
	parts     []columnRange
	maxX      float64 // right edge of the widest cell drawn
}

func newPDFTable(rep *report.Report) *pdfTable {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(rep.Title(), true)

	t := &pdfTable{pdf: pdf, rep: rep, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	t.layout()
	return t
}

func (t *pdfTable) draw() {
	for i, part := range t.parts {
		title := t.rep.Title()
		if len(t.parts) > 1 {
			title += fmt.Sprintf(" (part %d of %d)", i+1, len(t.parts))
		}

		t.pdf.AddPage()
		t.pdf.SetFont("Helvetica", "B", 11)
		t.pdf.CellFormat(0, 8, t.tr(title), "", 1, "L", false, 0, "")
		t.drawHeader(part)

		for _, row := range t.rep.Rows {
			if t.pdf.GetY()+2*pdfLineHeight > t.pageBottom() {
				t.pdf.AddPage()
				t.drawHeader(part)
			}
			t.drawRow(row, part)
		}
	}
}

func (t *pdfTable) pageBottom() float64 {
	_, h := t.pdf.GetPageSize()
	return h - pdfMargin
}

func (t *pdfTable) columnCount() int {
	n := len(t.rep.Columns)
	if t.rep.SummaryHeader != "" {
		n++
	}
	return n
}

// layout spreads the page width left of the user columns over the report
// columns, within fixed bounds, and splits the columns into parts that fit
// the page.
func (t *pdfTable) layout() {
	pageW, _ := t.pdf.GetPageSize()
	t.leadWidth = pdfNameWidth + pdfIdentWidth*float64(len(t.rep.IdentityFields))

	cols := t.columnCount()
	if cols == 0 {
		t.parts = []columnRange{{}}
		return
	}

	avail := pageW - 2*pdfMargin - t.leadWidth
	t.colWidth = avail / float64(cols)
	if t.colWidth < pdfMinColWidth {
		t.colWidth = pdfMinColWidth
	}
	if t.colWidth > pdfMaxColWidth {
		t.colWidth = pdfMaxColWidth
	}

	perPart := int((avail + 1e-6) / t.colWidth)
	if perPart < 1 {
		perPart = 1
	}
	t.parts = nil
	for from := 0; from < cols; from += perPart {
		to := from + perPart
		if to > cols {
			to = cols
		}
		t.parts = append(t.parts, columnRange{from: from, to: to})
	}
}

// dataEnd is the end of the part's activity or criteria columns.
func (t *pdfTable) dataEnd(part columnRange) int {
	return min(part.to, len(t.rep.Columns))
}

func (t *pdfTable) hasSummary(part columnRange) bool {
	return t.rep.SummaryHeader != "" && part.to > len(t.rep.Columns)
}

// clipSpans cuts header spans to the columns [from, to).
func clipSpans(spans []report.Span, from, to int) []report.Span {
	var out []report.Span
	pos := 0
	for _, span := range spans {
		start, end := max(pos, from), min(pos+span.Count, to)
		if end > start {
			out = append(out, report.Span{Label: span.Label, Count: end - start})
		}
		pos += span.Count
	}
	return out
}

// fit shortens s to the given width in the current font.
func (t *pdfTable) fit(s string, width float64) string {
	s = t.tr(s)
	limit := width - 1
	if t.pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && t.pdf.GetStringWidth(s+"..") > limit {
		s = s[:len(s)-1]
	}
	return s + ".."
}

func (t *pdfTable) cell(width float64, text, border, align string, fill bool) {
	t.pdf.CellFormat(width, pdfLineHeight, t.fit(text, width), border, 0, align, fill, 0, "")
	if x := t.pdf.GetX(); x > t.maxX {
		t.maxX = x
	}
}

func (t *pdfTable) drawHeader(part columnRange) {
	pdf := t.pdf
	pdf.SetFont("Helvetica", "B", pdfFontSize)
	pdf.SetFillColor(243, 243, 243)

	end := t.dataEnd(part)
	for _, hr := range t.rep.HeaderRows {
		t.cell(t.leadWidth, hr.Caption, "1", "L", true)
		for _, span := range clipSpans(hr.Spans, part.from, end) {
			t.cell(float64(span.Count)*t.colWidth, span.Label, "1", "C", true)
		}
		if t.hasSummary(part) {
			t.cell(t.colWidth, hr.Trailing, "1", "C", true)
		}
		pdf.Ln(-1)
	}

	t.cell(pdfNameWidth, headerName, "1", "L", true)
	for _, label := range identityLabels(t.rep) {
		t.cell(pdfIdentWidth, label, "1", "L", true)
	}
	for _, c := range t.rep.Columns[min(part.from, end):end] {
		t.cell(t.colWidth, c.Name, "1", "C", true)
	}
	if t.hasSummary(part) {
		t.cell(t.colWidth, t.rep.SummaryHeader, "1", "C", true)
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", pdfFontSize)
}

// drawRow draws the part of a user row two lines high: descriptions on top,
// dates below.
func (t *pdfTable) drawRow(row report.Row, part columnRange) {
	from, end := min(part.from, len(row.Cells)), min(t.dataEnd(part), len(row.Cells))
	groups := report.Compress(row.Cells[from:end])
	if row.Summary != nil && t.hasSummary(part) {
		groups = append(groups, report.Group{Value: *row.Summary, Span: 1})
	}

	for line := 0; line < 2; line++ {
		border := "LTR"
		if line == 1 {
			border = "LBR"
		}

		name := row.FullName
		if line == 1 {
			name = ""
		}
		t.cell(pdfNameWidth, name, border, "L", false)
		for _, v := range row.Identity {
			if line == 1 {
				v = ""
			}
			t.cell(pdfIdentWidth, v, border, "L", false)
		}
		for _, g := range groups {
			text := g.Value.Primary
			if line == 1 {
				text = g.Value.Secondary
			}
			t.cell(float64(g.Span)*t.colWidth, text, border, "C", false)
		}
		t.pdf.Ln(-1)
	}
}
