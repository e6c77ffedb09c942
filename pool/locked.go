// File: pool/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"

	"github.com/momentics/hioload-pool/api"
)

// Locked serializes every call on a Pool with a mutex. Use it when a pool
// is shared between goroutines; a pool per worker needs no locking.
type Locked struct {
	mu sync.Mutex
	p  *Pool
}

// NewLocked wraps p. p must not be used directly afterward.
func NewLocked(p *Pool) *Locked {
	return &Locked{p: p}
}

func (l *Locked) Take() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Take()
}

func (l *Locked) Put(slot []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Put(slot)
}

func (l *Locked) Prealloc(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Prealloc(n)
}

func (l *Locked) Owns(slot []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Owns(slot)
}

func (l *Locked) Stats() api.PoolStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Stats()
}

func (l *Locked) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Destroy()
}

// ObjSize and Cap are fixed at creation and need no lock.
func (l *Locked) ObjSize() int { return l.p.ObjSize() }
func (l *Locked) Cap() int     { return l.p.Cap() }

var _ api.SlotPool = (*Locked)(nil)
