package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"course_completion_report/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDelivery struct {
	calls       int
	err         error
	hadDeadline bool
}

func (f *fakeDelivery) DeliverScheduledExports(ctx context.Context) error {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	return f.err
}

func TestExportScheduler_RunOnce(t *testing.T) {
	delivery := &fakeDelivery{}
	s := NewExportScheduler(delivery, logger.Component("test"), "0 7 * * 1", time.UTC, time.Minute)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, delivery.calls)
	assert.True(t, delivery.hadDeadline)

	delivery.err = errors.New("telegram down")
	s.RunOnce(context.Background())
	assert.Equal(t, 2, delivery.calls)
}

func TestExportScheduler_StartStop(t *testing.T) {
	s := NewExportScheduler(&fakeDelivery{}, logger.Component("test"), "0 7 * * 1", time.UTC, 0)
	assert.True(t, s.Next().IsZero())

	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.Next()
	// cron computes the first run asynchronously after Start.
	require.Eventually(t, func() bool {
		next = s.Next()
		return !next.IsZero()
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 7, next.Hour())
}

func TestExportScheduler_InvalidSpec(t *testing.T) {
	s := NewExportScheduler(&fakeDelivery{}, logger.Component("test"), "every monday", time.UTC, 0)
	assert.Error(t, s.Start())
}
