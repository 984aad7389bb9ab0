package shardqueue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "jobs_submitted_total",
		Help:      "Background jobs accepted, by kind.",
	}, []string{"kind"})

	coalescedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "jobs_coalesced_total",
		Help:      "Jobs dropped because an identical job was already waiting.",
	}, []string{"kind"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "job_failures_total",
		Help:      "Background jobs that returned an error or panicked.",
	}, []string{"kind"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "job_duration_seconds",
		Help:      "Background job run time.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	queueFullTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "queue_full_total",
		Help:      "Submissions rejected because a worker queue stayed full.",
	})

	// Written by Submit and by the owning worker; last write wins.
	queueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "workdesk",
		Subsystem: "background",
		Name:      "queue_depth",
		Help:      "Jobs waiting per worker.",
	}, []string{"worker"})
)

func workerLabel(i int) string { return strconv.Itoa(i) }

// kindOf labels a job by the first word of its name ("refetch", "save"),
// keeping metric cardinality independent of cache keys.
func kindOf(j Job) string {
	s, ok := j.(fmt.Stringer)
	if !ok {
		return "func"
	}
	name := s.String()
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return "func"
	}
	return name
}
