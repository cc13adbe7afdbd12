package main

import (
	"fmt"
	"os"
	"path/filepath"

	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/logger"

	"github.com/spf13/cobra"
)

var exportOpts struct {
	kind     string
	format   string
	courseID int64
	outDir   string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a whole-course report file",
	Example: `  reportd export --course 7 --kind progress --format xlsx
  reportd export --course 7 --kind completion --format pdf --out /tmp`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Int64Var(&exportOpts.courseID, "course", 0, "course id (required)")
	f.StringVar(&exportOpts.kind, "kind", string(report.KindProgress), "report kind: progress or completion")
	f.StringVar(&exportOpts.format, "format", string(report.FormatCSV), "output format: csv, excelcsv, xlsx, pdf or json")
	f.StringVar(&exportOpts.outDir, "out", ".", "directory to write the file to")
	_ = exportCmd.MarkFlagRequired("course")
}

// parseExportArgs validates the flag values of the export command.
func parseExportArgs(kind, format string, courseID int64) (report.Kind, report.Format, error) {
	if courseID <= 0 {
		return "", "", fmt.Errorf("--course must be a positive id, got %d", courseID)
	}
	k := report.Kind(kind)
	if k != report.KindProgress && k != report.KindCompletion {
		return "", "", fmt.Errorf("--kind must be progress or completion, got %q", kind)
	}
	f, ok := report.ParseFormat(format)
	if !ok || f == report.FormatHTML {
		return "", "", fmt.Errorf("--format must be one of csv, excelcsv, xlsx, pdf, json, got %q", format)
	}
	return k, f, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	kind, format, err := parseExportArgs(exportOpts.kind, exportOpts.format, exportOpts.courseID)
	if err != nil {
		return err
	}

	cfg, db, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	file, err := newExportService(cfg, db).Export(cmd.Context(), kind, format, exportOpts.courseID)
	if err != nil {
		return err
	}

	path := filepath.Join(exportOpts.outDir, file.Name)
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Log.WithField("path", path).WithField("bytes", len(file.Content)).Info("Report exported")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
