package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factbot_messages_handled_total",
			Help: "Total number of chat messages handled, by routed intent",
		},
		[]string{"intent"},
	)

	ClassifierErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factbot_classifier_errors_total",
			Help: "Total number of failed intent classification calls",
		},
	)

	FactLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factbot_fact_lookups_total",
			Help: "Total number of fact resolutions, by outcome",
		},
		[]string{"outcome"},
	)

	StoreLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "factbot_store_lookup_duration_seconds",
			Help:    "Duration of fact store lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RepliesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factbot_replies_failed_total",
			Help: "Total number of replies the connector failed to deliver",
		},
	)
)
