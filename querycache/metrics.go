package querycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "hits_total",
		Help:      "Reads served from a fresh entry",
	})

	missesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "misses_total",
		Help:      "Reads that started a fetch",
	})

	dedupJoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "dedup_joins_total",
		Help:      "Reads that attached to an in-flight fetch",
	})

	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "invalidated_entries_total",
		Help:      "Entries marked stale by invalidation",
	})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "mutations_total",
		Help:      "Mutations by outcome",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "workdesk",
		Subsystem: "querycache",
		Name:      "fetch_duration_seconds",
		Help:      "Fetcher latency",
		Buckets:   prometheus.DefBuckets,
	})
)
