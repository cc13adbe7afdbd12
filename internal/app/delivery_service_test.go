package app

import (
	"context"
	"testing"

	"course_completion_report/internal/domain/report"
	"course_completion_report/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryService_DeliverScheduledExports(t *testing.T) {
	exporter := &fakeExporter{errs: map[string]error{"completion": ErrNoCriteria}}
	client := &fakeTelegramClient{}
	svc := NewDeliveryServiceImpl(exporter, client, logger.Component("test"), 42, []int64{1, 2}, report.FormatCSV)

	err := svc.DeliverScheduledExports(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"progress", "completion", "progress", "completion"}, exporter.calls)
	require.Len(t, client.documents, 2)
	assert.Equal(t, int64(42), client.documents[0].chatID)
	assert.Equal(t, "progress.c.csv", client.documents[0].fileName)
	assert.Equal(t, "data", client.documents[0].content)
	assert.Equal(t, "progress report for course 1", client.documents[0].caption)
	assert.Equal(t, []string{"Scheduled export: 2 delivered, 2 skipped, 0 failed."}, client.messages)
}

func TestDeliveryService_NoSummaryOnCleanRun(t *testing.T) {
	client := &fakeTelegramClient{}
	svc := NewDeliveryServiceImpl(&fakeExporter{}, client, logger.Component("test"), 42, []int64{1}, report.FormatCSV)

	require.NoError(t, svc.DeliverScheduledExports(context.Background()))
	assert.Len(t, client.documents, 2)
	assert.Empty(t, client.messages)
}

func TestDeliveryService_ReportsFailures(t *testing.T) {
	exporter := &fakeExporter{errs: map[string]error{"progress": errBoom}}
	client := &fakeTelegramClient{}
	svc := NewDeliveryServiceImpl(exporter, client, logger.Component("test"), 42, []int64{1}, report.FormatCSV)

	err := svc.DeliverScheduledExports(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Len(t, client.documents, 1)
	assert.Equal(t, []string{"Scheduled export: 1 delivered, 0 skipped, 1 failed."}, client.messages)
}

func TestDeliveryService_NothingToDo(t *testing.T) {
	exporter := &fakeExporter{}
	client := &fakeTelegramClient{}

	svc := NewDeliveryServiceImpl(exporter, client, logger.Component("test"), 42, nil, report.FormatCSV)
	assert.NoError(t, svc.DeliverScheduledExports(context.Background()))

	svc = NewDeliveryServiceImpl(exporter, client, logger.Component("test"), 0, []int64{1}, report.FormatCSV)
	assert.NoError(t, svc.DeliverScheduledExports(context.Background()))

	assert.Empty(t, exporter.calls)
}

func TestDeliveryService_Cancelled(t *testing.T) {
	exporter := &fakeExporter{}
	svc := NewDeliveryServiceImpl(exporter, &fakeTelegramClient{}, logger.Component("test"), 42, []int64{1}, report.FormatCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.DeliverScheduledExports(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exporter.calls)
}
