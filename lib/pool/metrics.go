package pool

import "github.com/go-i2p/scratchpool/lib/metrics"

// Pool utilization metrics, partitioned by pool name.
var (
	// PoolIdle is the current number of idle items per pool.
	PoolIdle = metrics.NewGaugeVec(
		"scratchpool_pool_idle",
		"Current number of idle items in the pool",
		"pool",
	)
	// PoolRentsTotal is the total number of Rent calls per pool.
	PoolRentsTotal = metrics.NewCounterVec(
		"scratchpool_pool_rents_total",
		"Total number of items rented from the pool",
		"pool",
	)
	// PoolMissesTotal is the number of rents that invoked the factory.
	PoolMissesTotal = metrics.NewCounterVec(
		"scratchpool_pool_misses_total",
		"Total number of rents served by the factory because the pool was empty",
		"pool",
	)
	// PoolReturnsTotal is the total number of Return calls per pool.
	PoolReturnsTotal = metrics.NewCounterVec(
		"scratchpool_pool_returns_total",
		"Total number of items returned to the pool",
		"pool",
	)
	// PoolRejectedTotal is the number of returned items that failed validation.
	PoolRejectedTotal = metrics.NewCounterVec(
		"scratchpool_pool_rejected_total",
		"Total number of returned items discarded because they failed validation",
		"pool",
	)
	// PoolDroppedTotal is the number of valid returned items discarded at capacity.
	PoolDroppedTotal = metrics.NewCounterVec(
		"scratchpool_pool_dropped_total",
		"Total number of returned items discarded because the pool was full",
		"pool",
	)
	// FactoryLatency tracks time spent in item factories across all pools.
	FactoryLatency = metrics.NewHistogram(
		"scratchpool_pool_factory_duration_seconds",
		"Time spent creating a new item",
		metrics.DefaultLatencyBuckets,
	)
)

// poolMetrics caches the per-pool children of the metric vectors.
// A nil *poolMetrics records nothing.
type poolMetrics struct {
	idle     *metrics.Gauge
	rents    *metrics.Counter
	misses   *metrics.Counter
	returns  *metrics.Counter
	rejected *metrics.Counter
	dropped  *metrics.Counter
}

func newPoolMetrics(name string) *poolMetrics {
	return &poolMetrics{
		idle:     PoolIdle.With(name),
		rents:    PoolRentsTotal.With(name),
		misses:   PoolMissesTotal.With(name),
		returns:  PoolReturnsTotal.With(name),
		rejected: PoolRejectedTotal.With(name),
		dropped:  PoolDroppedTotal.With(name),
	}
}

func (m *poolMetrics) setIdle(n int) {
	if m != nil {
		m.idle.Set(int64(n))
	}
}

func (m *poolMetrics) rent() {
	if m != nil {
		m.rents.Inc()
	}
}

func (m *poolMetrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *poolMetrics) ret() {
	if m != nil {
		m.returns.Inc()
	}
}

func (m *poolMetrics) reject() {
	if m != nil {
		m.rejected.Inc()
	}
}

func (m *poolMetrics) drop() {
	if m != nil {
		m.dropped.Inc()
	}
}
