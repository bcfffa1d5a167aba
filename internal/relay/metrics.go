package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "devblox",
		Name:      "sessions_active_total",
		Help:      "Number of live plugin sessions.",
	})
	metricCommandsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "devblox",
		Name:      "commands_pending_total",
		Help:      "Undelivered commands across all session mailboxes.",
	})
	metricCommandsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devblox",
		Name:      "commands_enqueued_total",
		Help:      "Commands admitted into session mailboxes.",
	})
	metricCommandsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devblox",
		Name:      "commands_delivered_total",
		Help:      "Commands handed to polling plugins.",
	})
	metricQuotaRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devblox",
		Name:      "quota_rejected_total",
		Help:      "Prompt submissions rejected by the daily quota.",
	})
	metricProviderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devblox",
		Name:      "provider_failures_total",
		Help:      "AI generation attempts that failed.",
	})
)
