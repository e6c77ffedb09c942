// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-pool/api"
)

// Pool is a scriptable api.SlotPool for testing pool consumers. Slots come
// from the heap and Take succeeds while fewer than Capacity are out,
// unless TakeErr is set. Put reports foreign and double returns like
// pool.Pool does.
type Pool struct {
	mu sync.Mutex

	ObjSize  int
	Capacity int
	TakeErr  error // returned by every Take while set
	PutErr   error // returned by every Put while set

	lent      map[*byte]bool // true while taken, false once put back
	out       int
	takes     int
	puts      int
	destroyed bool
}

// NewPool creates a fake pool of capacity slots of objSize bytes.
func NewPool(objSize, capacity int) *Pool {
	return &Pool{ObjSize: objSize, Capacity: capacity, lent: make(map[*byte]bool)}
}

func (p *Pool) Take() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.destroyed:
		return nil, api.ErrPoolDestroyed
	case p.TakeErr != nil:
		return nil, p.TakeErr
	case p.out >= p.Capacity:
		return nil, api.ErrPoolExhausted
	}
	s := make([]byte, p.ObjSize)
	p.lent[unsafe.SliceData(s)] = true
	p.out++
	p.takes++
	return s, nil
}

func (p *Pool) Put(slot []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return api.ErrPoolDestroyed
	}
	if p.PutErr != nil {
		return p.PutErr
	}
	taken, known := p.lent[unsafe.SliceData(slot)]
	switch {
	case !known:
		return api.ErrForeignSlot
	case !taken:
		return api.ErrDoubleReturn
	}
	p.lent[unsafe.SliceData(slot)] = false
	p.out--
	p.puts++
	return nil
}

func (p *Pool) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PoolStats{
		ObjSize:     p.ObjSize,
		Capacity:    p.Capacity,
		Outstanding: p.out,
		Takes:       uint64(p.takes),
		Puts:        uint64(p.puts),
	}
}

func (p *Pool) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.destroyed = true
	return nil
}

// Outstanding reports slots taken and not yet put back.
func (p *Pool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out
}

var _ api.SlotPool = (*Pool)(nil)
