package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "workdesk_client",
			Name:      "requests_total",
			Help:      "HTTP requests sent by the adapter, by status class.",
		},
		[]string{"class"},
	)

	forcedLogoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "workdesk_client",
			Name:      "forced_logouts_total",
			Help:      "Sessions ended by a 401 response.",
		},
	)

	backgroundJobsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "workdesk_client",
			Name:      "background_jobs_total",
			Help:      "Fire-and-forget jobs accepted by the executor.",
		},
	)

	backgroundFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "workdesk_client",
			Name:      "background_job_failures_total",
			Help:      "Fire-and-forget jobs that returned an error or panicked.",
		},
	)
)
