// Package metrics defines the Prometheus instruments exposed by the status
// server. All metrics are registered at init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session metrics
var (
	SessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsTotal,
			Help: HelpTextSessionsTotal,
		},
		[]string{LabelResult},
	)

	SessionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSessionDuration,
			Help:    HelpTextSessionDuration,
			Buckets: SessionDurationBuckets,
		},
	)

	StationsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStationsTotal,
			Help: HelpTextStationsTotal,
		},
	)
)

// Bucket metrics
var (
	BucketDeposits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDepositsTotal,
			Help: HelpTextDepositsTotal,
		},
	)

	BucketBulkRefills = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBulkRefillsTotal,
			Help: HelpTextBulkRefillsTotal,
		},
	)

	WaterRefills = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWaterRefillsTotal,
			Help: HelpTextWaterRefillsTotal,
		},
	)
)

// Chat metrics
var (
	ChatReplies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRepliesTotal,
			Help: HelpTextRepliesTotal,
		},
	)

	ChatReplyErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReplyErrorsTotal,
			Help: HelpTextReplyErrorsTotal,
		},
	)
)

// Log tailing metrics
var (
	LogReadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLogReadErrorsTotal,
			Help: HelpTextLogReadErrorsTotal,
		},
	)

	LogResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLogResetsTotal,
			Help: HelpTextLogResetsTotal,
		},
	)
)
