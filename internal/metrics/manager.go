package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for adapter requests
const (
	OutcomeLive     = "live"
	OutcomeCached   = "cached"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)

type Manager struct {
	// counters
	CounterAdapterRequests *prometheus.CounterVec
	CounterWorkoutsSaved   prometheus.Counter
	CounterWorkoutsDeleted prometheus.Counter
	CounterDiscarded       prometheus.Counter
	CounterImports         *prometheus.CounterVec

	// gauges
	GaugeStorageBytes prometheus.Gauge
	GaugeWorkouts     prometheus.Gauge

	// histograms
	HistogramAdapterDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

func NewTestManager() *Manager {
	return NewManager("fittrack", "test", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg *prometheus.Registry) *Manager {
	factory := promauto.With(reg)

	counterAdapterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "adapter_requests",
		Help:      "The total number of adapter lookups by source",
	}, []string{"adapter", "outcome"})
	counterWorkoutsSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_saved",
		Help:      "The total number of saved workouts",
	})
	counterWorkoutsDeleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_deleted",
		Help:      "The total number of deleted workouts",
	})
	counterDiscarded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "records_discarded",
		Help:      "Persisted or imported records dropped by validation",
	})
	counterImports := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "imports",
		Help:      "Import runs by mode",
	}, []string{"mode"})

	gaugeStorageBytes := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "storage_bytes",
		Help:      "Serialized size of all stored keys and values",
	})
	gaugeWorkouts := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts",
		Help:      "Current number of stored workouts",
	})

	histogramAdapterDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "adapter_request_duration_seconds",
		Help:      "Histogram of upstream request time in seconds",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"adapter"})

	return &Manager{
		CounterAdapterRequests:   counterAdapterRequests,
		CounterWorkoutsSaved:     counterWorkoutsSaved,
		CounterWorkoutsDeleted:   counterWorkoutsDeleted,
		CounterDiscarded:         counterDiscarded,
		CounterImports:           counterImports,
		GaugeStorageBytes:        gaugeStorageBytes,
		GaugeWorkouts:            gaugeWorkouts,
		HistogramAdapterDuration: histogramAdapterDuration,
		registry:                 reg,
	}
}

// Registry returns the registry the manager's collectors are registered with
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
