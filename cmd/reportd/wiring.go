package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"course_completion_report/internal/app"
	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/config"
	idb "course_completion_report/internal/infra/database"
	"course_completion_report/internal/infra/export"
	"course_completion_report/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

const chromeTimeout = time.Minute

// setup loads configuration, initialises logging and opens the database.
func setup(ctx context.Context) (*config.AppConfig, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load application configuration: %w", err)
	}
	logger.Init(cfg)
	logger.Log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"http_addr":   cfg.HTTPAddr,
		"pdf_engine":  cfg.PDFEngine,
	}).Info("Configuration loaded")

	db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to database: %w", err)
	}
	logger.Log.Info("Database connection established successfully.")
	return cfg, db, nil
}

// newRenderers registers a renderer for every output format.
func newRenderers(cfg *config.AppConfig) map[report.Format]app.Renderer {
	var pdf app.Renderer = export.PDFRenderer{}
	if cfg.PDFEngine == config.PDFEngineChrome {
		pdf = export.NewChromePDFRenderer(chromeTimeout)
	}
	return map[report.Format]app.Renderer{
		report.FormatHTML:     export.NewHTMLRenderer(),
		report.FormatCSV:      export.CSVRenderer{},
		report.FormatExcelCSV: export.ExcelCSVRenderer{},
		report.FormatXLSX:     export.XLSXRenderer{},
		report.FormatPDF:      pdf,
		report.FormatJSON:     export.JSONRenderer{},
	}
}

func reportSettings(cfg *config.AppConfig) app.ReportSettings {
	return app.ReportSettings{
		PageSize:       cfg.PageSize,
		DateFormat:     cfg.DateFormat,
		Location:       cfg.Location,
		IdentityFields: cfg.IdentityFields,
	}
}

// newExportService wires repositories, report builders and renderers.
func newExportService(cfg *config.AppConfig, db *sql.DB) *app.ExportService {
	courseRepo := idb.NewPostgresCourseRepository(db)
	completionRepo := idb.NewPostgresCompletionRepository(db)
	settings := reportSettings(cfg)

	builders := map[report.Kind]app.ReportBuilder{
		report.KindProgress:   app.NewProgressService(courseRepo, completionRepo, settings, logger.Component("progress_service")),
		report.KindCompletion: app.NewCompletionService(courseRepo, completionRepo, settings, logger.Component("completion_service")),
	}
	return app.NewExportService(builders, newRenderers(cfg), logger.Component("export_service"))
}
