package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelOperation = "operation"
	LabelReason    = "reason"
)

const (
	namespace = "dayroll"
	subsystem = "rolling"
)

var (
	// RowsProcessed counts the rows handed to the rolling engine.
	RowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rows_total",
		Help:      "Total number of rows processed",
	}, []string{LabelOperation})

	// WindowsEmitted counts windows that produced a value.
	WindowsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "windows_emitted_total",
		Help:      "Total number of windows that met min periods",
	}, []string{LabelOperation})

	// GroupsProcessed counts groups handled by grouped rolling.
	GroupsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "groups_total",
		Help:      "Total number of groups processed",
	}, []string{LabelOperation})

	// Errors counts rejected calls by reason.
	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "errors_total",
		Help:      "Total number of errors by reason",
	}, []string{LabelOperation, LabelReason})

	// WindowSize observes the number of rows in each window.
	WindowSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "window_size",
		Help:      "Number of rows per window",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{LabelOperation})
)
