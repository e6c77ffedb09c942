// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
)

type ControlAdapter struct {
	config   *control.ConfigStore
	metrics  *control.MetricsRegistry
	debug    *control.DebugProbes
	registry *control.Registry
}

// NewControlAdapter wires a config store, pool registry, metrics and debug
// probes together. Registry options (logger, initializers) pass through.
func NewControlAdapter(opts ...control.RegistryOption) *ControlAdapter {
	adapter := &ControlAdapter{
		config:   control.NewConfigStore(),
		metrics:  control.NewMetricsRegistry(),
		debug:    control.NewDebugProbes(),
		registry: control.NewRegistry(opts...),
	}
	control.RegisterPlatformProbes(adapter.debug)
	control.RegisterPoolProbes(adapter.debug, adapter.registry)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// SetConfig stores cfg, notifies reload listeners and applies the merged
// snapshot to the registry before returning.
func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfigSync(cfg)
	return c.registry.Apply(c.config.GetSnapshot())
}

func (c *ControlAdapter) Pool(name string) (api.SlotPool, bool) {
	p, ok := c.registry.Get(name)
	if !ok {
		return nil, false
	}
	return p, true
}

// Stats refreshes pool metrics and merges them with debug probe output.
func (c *ControlAdapter) Stats() map[string]any {
	for name, s := range c.registry.Stats() {
		c.metrics.RecordPool(name, s)
	}
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any)
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Registry exposes the underlying pool registry, e.g. for a PoolCollector.
func (c *ControlAdapter) Registry() *control.Registry {
	return c.registry
}

func (c *ControlAdapter) Close() error {
	return c.registry.Close()
}

var _ api.Control = (*ControlAdapter)(nil)
