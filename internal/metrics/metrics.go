// Package metrics provides Prometheus metrics for the film catalog.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	// AssociationSyncTotal tracks association replacements by relationship and outcome
	AssociationSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filmapi",
			Subsystem: "association",
			Name:      "sync_total",
			Help:      "Total number of association set replacements by outcome",
		},
		[]string{"relationship", "result"},
	)

	// AssociationSyncDuration tracks how long a replacement transaction takes
	AssociationSyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "filmapi",
			Subsystem: "association",
			Name:      "sync_duration_seconds",
			Help:      "Duration of association set replacements in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"relationship"},
	)

	// EntityMutationsTotal tracks committed entity mutations
	EntityMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filmapi",
			Subsystem: "entity",
			Name:      "mutations_total",
			Help:      "Total number of entity mutations by kind, operation and outcome",
		},
		[]string{"kind", "operation", "result"},
	)
)
