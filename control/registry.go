// control/registry.go
// Author: momentics <momentics@gmail.com>
//
// Named pool registry fed by ConfigStore snapshots.

package control

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// Registry owns named, mutex-guarded pools. A pool's capacity is fixed,
// so re-applying a name with a different config is refused.
type Registry struct {
	mu     sync.RWMutex
	pools  map[string]*registered
	inits  map[string]api.Initializer
	logger *slog.Logger
}

type registered struct {
	cfg  pool.Config
	pool *pool.Locked
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithLogger configures the registry with a logger.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithInitializer binds the slot initializer used when pool name is created.
func WithInitializer(name string, init api.Initializer) RegistryOption {
	return func(r *Registry) {
		r.inits[name] = init
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		pools: make(map[string]*registered),
		inits: make(map[string]api.Initializer),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Create builds and registers a pool. It fails with api.ErrAlreadyExists
// if name is taken.
func (r *Registry) Create(name string, cfg pool.Config) (*pool.Locked, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(name, cfg)
}

func (r *Registry) createLocked(name string, cfg pool.Config) (*pool.Locked, error) {
	if _, ok := r.pools[name]; ok {
		return nil, api.ErrAlreadyExists.WithContext("pool", name)
	}
	p, err := pool.NewFromConfig(cfg, r.inits[name])
	if err != nil {
		r.logger.Error("pool create failed", "pool", name, "code", api.CodeOf(err).String(), "error", err)
		return nil, fmt.Errorf("pool %q: %w", name, err)
	}
	lp := pool.NewLocked(p)
	r.pools[name] = &registered{cfg: cfg, pool: lp}
	r.logger.Info("pool created",
		"pool", name,
		"object_size", cfg.ObjectSize,
		"max_objects", cfg.MaxObjects,
		"order", cfg.Order,
		"backing", cfg.Backing,
	)
	return lp, nil
}

// Get returns the pool registered under name.
func (r *Registry) Get(name string) (*pool.Locked, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.pools[name]
	if !ok {
		return nil, false
	}
	return e.pool, true
}

// Config returns the configuration name was created with.
func (r *Registry) Config(name string) (pool.Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.pools[name]
	if !ok {
		return pool.Config{}, false
	}
	return e.cfg, true
}

// Names returns registered pool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pools))
	for n := range r.pools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Destroy destroys and unregisters one pool. The pool stays registered if
// Destroy refuses (strict pools with outstanding slots).
func (r *Registry) Destroy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.pools[name]
	if !ok {
		return api.ErrNotFound.WithContext("pool", name)
	}
	if err := e.pool.Destroy(); err != nil {
		r.logger.Warn("pool destroy refused", "pool", name, "code", api.CodeOf(err).String(), "error", err)
		return fmt.Errorf("pool %q: %w", name, err)
	}
	delete(r.pools, name)
	r.logger.Info("pool destroyed", "pool", name)
	return nil
}

// Apply creates pools for names not yet registered. Entries that would
// build a different pool than the registered one are reported and left
// untouched; spelling differences and defaults do not count.
func (r *Registry) Apply(snapshot map[string]any) error {
	names := make([]string, 0, len(snapshot))
	for n := range snapshot {
		names = append(names, n)
	}
	sort.Strings(names)

	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, name := range names {
		cfg, err := DecodePoolConfig(snapshot[name])
		if err != nil {
			r.logger.Error("pool config rejected", "pool", name, "code", api.CodeOf(err).String(), "error", err)
			errs = append(errs, fmt.Errorf("pool %q: %w", name, err))
			continue
		}
		if e, ok := r.pools[name]; ok {
			switch {
			case !e.cfg.SameLayout(cfg):
				r.logger.Warn("pool config change ignored; layout is fixed at creation", "pool", name)
				errs = append(errs, fmt.Errorf("pool %q: %w", name,
					api.ErrInvalidConfiguration.WithContext("reason", "reconfigure")))
			case e.cfg.Prealloc != cfg.Prealloc:
				r.logger.Debug("pool prealloc change ignored", "pool", name, "prealloc", cfg.Prealloc)
			}
			continue
		}
		if _, err := r.createLocked(name, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Watch applies every ConfigStore change to r.
func (r *Registry) Watch(cs *ConfigStore) {
	cs.OnReload(func() {
		if err := r.Apply(cs.GetSnapshot()); err != nil {
			r.logger.Warn("pool reload incomplete", "error", err)
		}
	})
}

// Stats returns per-pool snapshots.
func (r *Registry) Stats() map[string]api.PoolStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]api.PoolStats, len(r.pools))
	for n, e := range r.pools {
		out[n] = e.pool.Stats()
	}
	return out
}

// Close destroys every pool, continuing past failures.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for name, e := range r.pools {
		if err := e.pool.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("pool %q: %w", name, err))
			continue
		}
		delete(r.pools, name)
	}
	r.logger.Info("pool registry closed", "remaining", len(r.pools))
	return errors.Join(errs...)
}
