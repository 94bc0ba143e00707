package goGuard

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by goGuard APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricOwnershipTransferStarted is an exported constant or variable used by the guard engine.
	MetricOwnershipTransferStarted MetricID = iota
	// MetricOwnershipTransferred is an exported constant or variable used by the guard engine.
	MetricOwnershipTransferred
	// MetricOwnershipRenounced is an exported constant or variable used by the guard engine.
	MetricOwnershipRenounced
	// MetricAdminGranted is an exported constant or variable used by the guard engine.
	MetricAdminGranted
	// MetricAdminRevoked is an exported constant or variable used by the guard engine.
	MetricAdminRevoked
	// MetricRoleGranted is an exported constant or variable used by the guard engine.
	MetricRoleGranted
	// MetricRoleRevoked is an exported constant or variable used by the guard engine.
	MetricRoleRevoked
	// MetricRoleDenied is an exported constant or variable used by the guard engine.
	MetricRoleDenied
	// MetricPaused is an exported constant or variable used by the guard engine.
	MetricPaused
	// MetricResumed is an exported constant or variable used by the guard engine.
	MetricResumed
	// MetricGuardAcquired is an exported constant or variable used by the guard engine.
	MetricGuardAcquired
	// MetricReentrancyBlocked is an exported constant or variable used by the guard engine.
	MetricReentrancyBlocked
	// MetricGuardedLatency is an exported constant or variable used by the guard engine.
	MetricGuardedLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by goGuard APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by goGuard APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a Metrics collector from configuration.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether metric collection is on.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample into the guarded-section histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricGuardedLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current value of a counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a point-in-time copy of all counters and histograms.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGuardedLatency].buckets[i])
		}
		s.Histograms[MetricGuardedLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
