package export

import (
	"context"
	"fmt"
	"io"

	"course_completion_report/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

// XLSXRenderer writes a single-sheet workbook. Header spans and runs of
// equal cells become merged ranges.
type XLSXRenderer struct{}

func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXRenderer) Extension() string { return "xlsx" }

func (XLSXRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(rep.Kind)
	if sheet == "" {
		sheet = "report"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: sheet}
	if err := sw.init(); err != nil {
		return err
	}

	lead := leadColumns(rep)
	summaryCol := lead + len(rep.Columns) + 1

	row := 1
	sw.set(1, row, rep.Title(), sw.bold)
	row += 2

	for _, hr := range rep.HeaderRows {
		sw.merge(1, lead, row, hr.Caption, sw.header)
		col := lead + 1
		for _, span := range hr.Spans {
			sw.merge(col, col+span.Count-1, row, span.Label, sw.header)
			col += span.Count
		}
		if rep.SummaryHeader != "" {
			sw.set(summaryCol, row, hr.Trailing, sw.header)
		}
		row++
	}

	col := 1
	sw.set(col, row, headerName, sw.header)
	for _, label := range identityLabels(rep) {
		col++
		sw.set(col, row, label, sw.header)
	}
	for _, c := range rep.Columns {
		col++
		sw.set(col, row, c.Name, sw.header)
	}
	if rep.SummaryHeader != "" {
		sw.set(summaryCol, row, rep.SummaryHeader, sw.header)
	}
	row++

	for _, r := range rep.Rows {
		sw.set(1, row, r.FullName, sw.bold)
		for i, v := range r.Identity {
			sw.set(2+i, row, v, 0)
		}
		col := lead + 1
		for _, g := range r.Groups() {
			sw.merge(col, col+g.Span-1, row, cellText(g.Value), sw.wrap)
			col += g.Span
		}
		if r.Summary != nil {
			sw.set(summaryCol, row, cellText(*r.Summary), sw.wrap)
		}
		row++
	}

	if sw.err != nil {
		return fmt.Errorf("failed to fill sheet: %w", sw.err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to size name column: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellText(c report.Cell) string {
	if c.Secondary == "" {
		return c.Primary
	}
	return c.Primary + "\n" + c.Secondary
}

// sheetWriter keeps the first error so the layout code reads straight.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error

	bold, header, wrap int
}

func (s *sheetWriter) init() error {
	var err error
	if s.bold, err = s.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if s.header, err = s.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F3F3F3"}},
	}); err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if s.wrap, err = s.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
	}); err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	return nil
}

func (s *sheetWriter) set(col, row int, value string, style int) {
	s.merge(col, col, row, value, style)
}

// merge writes value into columns from..to of row, merging them when the
// range is wider than one cell.
func (s *sheetWriter) merge(from, to, row int, value string, style int) {
	if s.err != nil {
		return
	}
	start, err := excelize.CoordinatesToCellName(from, row)
	if err != nil {
		s.err = err
		return
	}
	end, err := excelize.CoordinatesToCellName(to, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetCellValue(s.sheet, start, value); err != nil {
		s.err = err
		return
	}
	if to > from {
		if err := s.f.MergeCell(s.sheet, start, end); err != nil {
			s.err = err
			return
		}
	}
	if style != 0 {
		s.err = s.f.SetCellStyle(s.sheet, start, end, style)
	}
}
