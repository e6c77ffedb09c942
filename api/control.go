// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages pool configuration, named pools and runtime metrics.
type Control interface {
	GetConfig() map[string]any
	// SetConfig merges pool configs keyed by pool name and creates the
	// pools that do not exist yet.
	SetConfig(cfg map[string]any) error
	Pool(name string) (SlotPool, bool)
	Stats() map[string]any
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
	Close() error
}
