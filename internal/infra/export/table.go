// Package export renders built reports to downloadable formats.
package export

import (
	"course_completion_report/internal/domain/report"
)

const (
	headerName       = "Name"
	headerDateSuffix = " completion date"
)

// identityLabel is the column heading of an extra user identity field.
func identityLabel(field string) string {
	switch field {
	case "email":
		return "Email address"
	case "idnumber":
		return "ID number"
	default:
		return field
	}
}

func identityLabels(rep *report.Report) []string {
	labels := make([]string, len(rep.IdentityFields))
	for i, f := range rep.IdentityFields {
		labels[i] = identityLabel(f)
	}
	return labels
}

// flatHeader is the single header line of the delimited formats: the user
// columns, then a description and a date column per report column.
func flatHeader(rep *report.Report) []string {
	header := append([]string{headerName}, identityLabels(rep)...)
	for _, c := range rep.Columns {
		header = append(header, c.Name, c.Name+headerDateSuffix)
	}
	if rep.SummaryHeader != "" {
		header = append(header, rep.SummaryHeader, rep.SummaryHeader+headerDateSuffix)
	}
	return header
}

// flatRecords returns the uncompressed data lines matching flatHeader.
func flatRecords(rep *report.Report) [][]string {
	records := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rec := make([]string, 0, 1+len(row.Identity)+2*len(row.Cells)+2)
		rec = append(rec, row.FullName)
		rec = append(rec, row.Identity...)
		for _, c := range row.Cells {
			rec = append(rec, c.Primary, c.Secondary)
		}
		if rep.SummaryHeader != "" {
			var summary report.Cell
			if row.Summary != nil {
				summary = *row.Summary
			}
			rec = append(rec, summary.Primary, summary.Secondary)
		}
		records = append(records, rec)
	}
	return records
}

// leadColumns is the number of user columns left of the report columns.
func leadColumns(rep *report.Report) int {
	return 1 + len(rep.IdentityFields)
}
