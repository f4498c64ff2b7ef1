package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector implements prometheus.Collector for pgxpool statistics,
// one label per shard. Stats are read on-demand during each Prometheus
// scrape — no polling goroutine.
type PoolCollector struct {
	pools map[string]*pgxpool.Pool

	acquireCount            *prometheus.Desc
	acquireDuration         *prometheus.Desc
	acquiredConns           *prometheus.Desc
	canceledAcquireCount    *prometheus.Desc
	constructingConns       *prometheus.Desc
	emptyAcquireCount       *prometheus.Desc
	idleConns               *prometheus.Desc
	maxConns                *prometheus.Desc
	maxIdleDestroyCount     *prometheus.Desc
	maxLifetimeDestroyCount *prometheus.Desc
	newConnsCount           *prometheus.Desc
	totalConns              *prometheus.Desc
}

// NewPoolCollector creates a collector that exports pgxpool stats per shard.
func NewPoolCollector(pools map[string]*pgxpool.Pool) *PoolCollector {
	return &PoolCollector{
		pools: pools,
		acquireCount: prometheus.NewDesc(
			"shardmux_pgxpool_acquire_count",
			"Cumulative count of successful connection acquires.",
			[]string{"shard"}, nil,
		),
		acquireDuration: prometheus.NewDesc(
			"shardmux_pgxpool_acquire_duration_seconds",
			"Cumulative time spent acquiring connections.",
			[]string{"shard"}, nil,
		),
		acquiredConns: prometheus.NewDesc(
			"shardmux_pgxpool_acquired_conns",
			"Number of currently acquired connections.",
			[]string{"shard"}, nil,
		),
		canceledAcquireCount: prometheus.NewDesc(
			"shardmux_pgxpool_canceled_acquire_count",
			"Cumulative count of acquires canceled by context.",
			[]string{"shard"}, nil,
		),
		constructingConns: prometheus.NewDesc(
			"shardmux_pgxpool_constructing_conns",
			"Number of connections currently being constructed.",
			[]string{"shard"}, nil,
		),
		emptyAcquireCount: prometheus.NewDesc(
			"shardmux_pgxpool_empty_acquire_count",
			"Cumulative count of acquires from an empty pool.",
			[]string{"shard"}, nil,
		),
		idleConns: prometheus.NewDesc(
			"shardmux_pgxpool_idle_conns",
			"Number of idle connections in the pool.",
			[]string{"shard"}, nil,
		),
		maxConns: prometheus.NewDesc(
			"shardmux_pgxpool_max_conns",
			"Maximum number of connections allowed.",
			[]string{"shard"}, nil,
		),
		maxIdleDestroyCount: prometheus.NewDesc(
			"shardmux_pgxpool_max_idle_destroy_count",
			"Cumulative count of connections destroyed due to idle timeout.",
			[]string{"shard"}, nil,
		),
		maxLifetimeDestroyCount: prometheus.NewDesc(
			"shardmux_pgxpool_max_lifetime_destroy_count",
			"Cumulative count of connections destroyed due to max lifetime.",
			[]string{"shard"}, nil,
		),
		newConnsCount: prometheus.NewDesc(
			"shardmux_pgxpool_new_conns_count",
			"Cumulative count of new connections created.",
			[]string{"shard"}, nil,
		),
		totalConns: prometheus.NewDesc(
			"shardmux_pgxpool_total_conns",
			"Total number of connections in the pool.",
			[]string{"shard"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquireCount
	ch <- c.acquireDuration
	ch <- c.acquiredConns
	ch <- c.canceledAcquireCount
	ch <- c.constructingConns
	ch <- c.emptyAcquireCount
	ch <- c.idleConns
	ch <- c.maxConns
	ch <- c.maxIdleDestroyCount
	ch <- c.maxLifetimeDestroyCount
	ch <- c.newConnsCount
	ch <- c.totalConns
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for name, pool := range c.pools {
		stat := pool.Stat()

		ch <- prometheus.MustNewConstMetric(c.acquireCount, prometheus.GaugeValue, float64(stat.AcquireCount()), name)
		ch <- prometheus.MustNewConstMetric(c.acquireDuration, prometheus.GaugeValue, stat.AcquireDuration().Seconds(), name)
		ch <- prometheus.MustNewConstMetric(c.acquiredConns, prometheus.GaugeValue, float64(stat.AcquiredConns()), name)
		ch <- prometheus.MustNewConstMetric(c.canceledAcquireCount, prometheus.GaugeValue, float64(stat.CanceledAcquireCount()), name)
		ch <- prometheus.MustNewConstMetric(c.constructingConns, prometheus.GaugeValue, float64(stat.ConstructingConns()), name)
		ch <- prometheus.MustNewConstMetric(c.emptyAcquireCount, prometheus.GaugeValue, float64(stat.EmptyAcquireCount()), name)
		ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(stat.IdleConns()), name)
		ch <- prometheus.MustNewConstMetric(c.maxConns, prometheus.GaugeValue, float64(stat.MaxConns()), name)
		ch <- prometheus.MustNewConstMetric(c.maxIdleDestroyCount, prometheus.GaugeValue, float64(stat.MaxIdleDestroyCount()), name)
		ch <- prometheus.MustNewConstMetric(c.maxLifetimeDestroyCount, prometheus.GaugeValue, float64(stat.MaxLifetimeDestroyCount()), name)
		ch <- prometheus.MustNewConstMetric(c.newConnsCount, prometheus.GaugeValue, float64(stat.NewConnsCount()), name)
		ch <- prometheus.MustNewConstMetric(c.totalConns, prometheus.GaugeValue, float64(stat.TotalConns()), name)
	}
}
