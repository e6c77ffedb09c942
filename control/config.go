// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload propagation.
// Keys are pool names; values are pool.Config or any map DecodePoolConfig accepts.

package control

import (
	"sync"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload listeners asynchronously.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	for _, fn := range cs.merge(newCfg) {
		go fn()
	}
}

// SetConfigSync merges new values and runs listeners before returning.
func (cs *ConfigStore) SetConfigSync(newCfg map[string]any) {
	for _, fn := range cs.merge(newCfg) {
		fn()
	}
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// merge applies newCfg and returns the listeners to notify. Listeners run
// outside the lock so they may read the snapshot.
func (cs *ConfigStore) merge(newCfg map[string]any) []func() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	return append([]func(){}, cs.listeners...)
}
