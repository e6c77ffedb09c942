// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for system-level monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-pool/api"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// RecordPool stores s under "pool.<name>.<field>" keys.
func (mr *MetricsRegistry) RecordPool(name string, s api.PoolStats) {
	prefix := "pool." + name + "."
	mr.mu.Lock()
	defer mr.mu.Unlock()
	for k, v := range map[string]any{
		"capacity":    s.Capacity,
		"carved":      s.Carved,
		"free":        s.Free,
		"outstanding": s.Outstanding,
		"bytes":       s.Bytes,
		"takes":       s.Takes,
		"puts":        s.Puts,
		"hits":        s.Hits,
		"misses":      s.Misses,
		"exhausted":   s.Exhausted,
		"bad_returns": s.BadReturns,
		"init_errors": s.InitErrors,
		"utilization": s.Utilization(),
	} {
		mr.metrics[prefix+k] = v
	}
	mr.updated = time.Now()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// Updated reports when a metric was last written.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
