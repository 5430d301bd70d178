package harness

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const algorithmLabel = "algorithm"

// Metrics holds the Prometheus collectors updated by a [Harness].
type Metrics struct {
	runsTotal     *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	bytesInTotal  *prometheus.CounterVec
	bytesOutTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec

	registered bool
	mu         sync.Mutex
}

// NewMetrics creates the collectors under the given namespace. They aren't
// registered anywhere until [Metrics.Register] is called.
func NewMetrics(namespace string) *Metrics {
	labels := []string{algorithmLabel}

	return &Metrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "runs_total",
			Help:      "Total number of compression round trips attempted",
		}, labels),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "failures_total",
			Help:      "Total number of round trips that failed or didn't reproduce their input",
		}, labels),
		bytesInTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "bytes_in_total",
			Help:      "Total number of uncompressed bytes fed to compressors",
		}, labels),
		bytesOutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "bytes_out_total",
			Help:      "Total number of compressed bytes produced",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "round_trip_duration_seconds",
			Help:      "Time taken to compress and decompress one message",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, labels),
	}
}

// Register registers the collectors with `registerer`, or the default
// registerer if it's nil. Registering twice is a no-op.
func (m *Metrics) Register(registerer prometheus.Registerer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	collectors := []prometheus.Collector{
		m.runsTotal,
		m.failuresTotal,
		m.bytesInTotal,
		m.bytesOutTotal,
		m.duration,
	}
	for i, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			// Undo the partial registration.
			for _, added := range collectors[:i] {
				registerer.Unregister(added)
			}
			return err
		}
	}

	m.registered = true
	return nil
}

func (m *Metrics) observeSuccess(algorithm string, bytesIn, bytesOut int, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(algorithm).Inc()
	m.bytesInTotal.WithLabelValues(algorithm).Add(float64(bytesIn))
	m.bytesOutTotal.WithLabelValues(algorithm).Add(float64(bytesOut))
	m.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

func (m *Metrics) observeFailure(algorithm string) {
	m.runsTotal.WithLabelValues(algorithm).Inc()
	m.failuresTotal.WithLabelValues(algorithm).Inc()
}
