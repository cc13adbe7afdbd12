package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"course_completion_report/internal/domain/report"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVRenderer writes the report as comma separated UTF-8.
type CSVRenderer struct{}

func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVRenderer) Extension() string   { return "csv" }

func (CSVRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	return writeDelimited(w, rep, ',')
}

// ExcelCSVRenderer writes tab separated UTF-16LE with a byte order mark,
// which spreadsheet applications open without an import dialog.
type ExcelCSVRenderer struct{}

func (ExcelCSVRenderer) ContentType() string { return "text/csv; charset=UTF-16LE" }
func (ExcelCSVRenderer) Extension() string   { return "csv" }

func (ExcelCSVRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	tw := transform.NewWriter(w, encoder)
	if err := writeDelimited(tw, rep, '\t'); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to flush UTF-16 output: %w", err)
	}
	return nil
}

func writeDelimited(w io.Writer, rep *report.Report, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma

	if err := writer.Write(flatHeader(rep)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range flatRecords(rep) {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
