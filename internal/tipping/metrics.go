package tipping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tippy_session_wait_seconds",
		Help:    "Time spent waiting to acquire the store session.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
	sessionHold = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tippy_session_hold_seconds",
		Help:    "Time the store session was held, flush included.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
	persistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tippy_persistence_failures_total",
		Help: "Snapshot writes that failed on session release.",
	})
	predictionsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tippy_predictions_stored_total",
		Help: "Predictions inserted or overwritten, by kind.",
	}, []string{"kind"})
)
