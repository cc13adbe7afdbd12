package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rendersCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "completion_report",
		Name:      "renders_total",
		Help:      "Number of report renders, labeled by report kind, format and outcome.",
	}, []string{"report", "format", "outcome"})

	renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "completion_report",
		Name:      "render_duration_seconds",
		Help:      "Time spent writing a built report to its output format.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"report", "format"})

	scheduledRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "completion_report",
		Subsystem: "scheduler",
		Name:      "runs_total",
		Help:      "Number of scheduled delivery runs, labeled by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(rendersCounter, renderDuration, scheduledRuns)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// formatLabel names the HTML format, whose parameter value is empty.
func formatLabel(format string) string {
	if format == "" {
		return "html"
	}
	return format
}

// RecordRender counts one render and observes its duration.
func RecordRender(kind, format string, took time.Duration, err error) {
	format = formatLabel(format)
	rendersCounter.WithLabelValues(kind, format, outcome(err)).Inc()
	renderDuration.WithLabelValues(kind, format).Observe(took.Seconds())
}

// RecordScheduledRun counts one scheduled delivery run.
func RecordScheduledRun(err error) {
	scheduledRuns.WithLabelValues(outcome(err)).Inc()
}
