// control/prometheus.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus exposition of registry pool statistics.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-pool/api"
)

type poolMetric struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(api.PoolStats) float64
}

// PoolCollector reports every pool of a Registry, labelled by pool name.
type PoolCollector struct {
	reg     *Registry
	metrics []poolMetric
}

// NewPoolCollector builds a collector under the given namespace
// (e.g. "hioload").
func NewPoolCollector(namespace string, reg *Registry) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, []string{"pool"}, nil)
	}
	gauge := func(name, help string, fn func(api.PoolStats) float64) poolMetric {
		return poolMetric{desc: desc(name, help), kind: prometheus.GaugeValue, value: fn}
	}
	counter := func(name, help string, fn func(api.PoolStats) uint64) poolMetric {
		return poolMetric{desc: desc(name, help), kind: prometheus.CounterValue,
			value: func(s api.PoolStats) float64 { return float64(fn(s)) }}
	}
	return &PoolCollector{
		reg: reg,
		metrics: []poolMetric{
			gauge("capacity_slots", "Maximum number of slots the pool may hold",
				func(s api.PoolStats) float64 { return float64(s.Capacity) }),
			gauge("carved_slots", "Slots materialized so far",
				func(s api.PoolStats) float64 { return float64(s.Carved) }),
			gauge("free_slots", "Slots ready for reuse",
				func(s api.PoolStats) float64 { return float64(s.Free) }),
			gauge("outstanding_slots", "Slots currently lent to callers",
				func(s api.PoolStats) float64 { return float64(s.Outstanding) }),
			gauge("storage_bytes", "Bytes reserved for slot storage",
				func(s api.PoolStats) float64 { return float64(s.Bytes) }),
			counter("takes_total", "Successful Take calls", func(s api.PoolStats) uint64 { return s.Takes }),
			counter("puts_total", "Successful Put calls", func(s api.PoolStats) uint64 { return s.Puts }),
			counter("hits_total", "Takes served from the free list", func(s api.PoolStats) uint64 { return s.Hits }),
			counter("misses_total", "Takes that carved a new slot", func(s api.PoolStats) uint64 { return s.Misses }),
			counter("exhausted_total", "Takes refused at capacity", func(s api.PoolStats) uint64 { return s.Exhausted }),
			counter("bad_returns_total", "Foreign or repeated Put calls", func(s api.PoolStats) uint64 { return s.BadReturns }),
			counter("init_errors_total", "Initializer failures", func(s api.PoolStats) uint64 { return s.InitErrors }),
		},
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	for name, s := range c.reg.Stats() {
		for _, m := range c.metrics {
			ch <- prometheus.MustNewConstMetric(m.desc, m.kind, m.value(s), name)
		}
	}
}

var _ prometheus.Collector = (*PoolCollector)(nil)
