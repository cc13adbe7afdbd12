package main

import (
	"context"
	"net"
	"net/http"
	"testing"

	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/config"
	"course_completion_report/internal/infra/export"
	"course_completion_report/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderers(t *testing.T) {
	renderers := newRenderers(&config.AppConfig{PDFEngine: config.PDFEngineFPDF})
	for _, f := range []report.Format{
		report.FormatHTML, report.FormatCSV, report.FormatExcelCSV,
		report.FormatXLSX, report.FormatPDF, report.FormatJSON,
	} {
		assert.Contains(t, renderers, f)
	}
	assert.IsType(t, export.PDFRenderer{}, renderers[report.FormatPDF])

	renderers = newRenderers(&config.AppConfig{PDFEngine: config.PDFEngineChrome})
	assert.IsType(t, &export.ChromePDFRenderer{}, renderers[report.FormatPDF])
}

func TestParseExportArgs(t *testing.T) {
	kind, format, err := parseExportArgs("completion", "xlsx", 7)
	require.NoError(t, err)
	assert.Equal(t, report.KindCompletion, kind)
	assert.Equal(t, report.FormatXLSX, format)

	_, _, err = parseExportArgs("progress", "csv", 0)
	assert.Error(t, err)
	_, _, err = parseExportArgs("grades", "csv", 1)
	assert.Error(t, err)
	_, _, err = parseExportArgs("progress", "", 1)
	assert.Error(t, err)
	_, _, err = parseExportArgs("progress", "docx", 1)
	assert.Error(t, err)
}

func TestRootCommand(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "export"})
}

func TestServeHTTP_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = serveHTTP(context.Background(), srv, logger.Component("test"))
	assert.Error(t, err)
}

func TestServeHTTP_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	assert.NoError(t, serveHTTP(ctx, srv, logger.Component("test")))
}
