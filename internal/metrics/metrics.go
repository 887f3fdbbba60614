package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leads"

var (
	// LeadsReceived counts every submission that reached the intake handler.
	LeadsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "received_total",
			Help:      "Total number of lead submissions received",
		},
	)

	// LeadsRejected counts rejections by reason: rate_limit, validation, bot.
	LeadsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_total",
			Help:      "Total number of lead submissions rejected",
		},
		[]string{"reason"},
	)

	// LeadsAccepted counts submissions for which both emails were dispatched.
	LeadsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accepted_total",
			Help:      "Total number of lead submissions fully processed",
		},
	)

	// ProviderSends counts provider calls by kind (staff, receipt) and status
	// (ok, failure).
	ProviderSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_sends_total",
			Help:      "Total number of email provider dispatch attempts",
		},
		[]string{"kind", "status"},
	)
)
