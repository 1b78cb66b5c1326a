package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests      *prometheus.CounterVec
	CounterSessionsSaved prometheus.Counter
	CounterSnapshotJobs  *prometheus.CounterVec
	CounterCacheLookups  *prometheus.CounterVec

	// gauges
	GaugeRequests        prometheus.Gauge
	GaugeSnapshotBacklog prometheus.Gauge

	// histograms
	HistRequestDuration  *prometheus.HistogramVec
	HistSnapshotDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("kanso", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("kanso", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterSessionsSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_saved",
		Help:      "The total number of saved workout sessions",
	})
	counterSnapshotJobs := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "snapshot_jobs",
		Help:      "Progress snapshot jobs by outcome",
	}, []string{"outcome"})
	counterCacheLookups := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "history_cache_lookups",
		Help:      "History cache lookups by result",
	}, []string{"result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeSnapshotBacklog := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "snapshot_backlog",
		Help:      "Snapshot jobs waiting in the queue",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01,
				0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
		[]string{"route"},
	)
	histSnapshotDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   prometheus.DefBuckets,
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of a single snapshot recomputation in seconds",
		},
	)

	return &Manager{
		CounterRequests:      counterRequests,
		CounterSessionsSaved: counterSessionsSaved,
		CounterSnapshotJobs:  counterSnapshotJobs,
		CounterCacheLookups:  counterCacheLookups,
		GaugeRequests:        gaugeRequests,
		GaugeSnapshotBacklog: gaugeSnapshotBacklog,
		HistRequestDuration:  histReqDuration,
		HistSnapshotDuration: histSnapshotDuration,
	}
}
