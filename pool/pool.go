// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity slot pool. Not safe for concurrent use; see Locked.

package pool

import (
	"math"
	"unsafe"

	"github.com/bits-and-blooms/bitset"

	"github.com/momentics/hioload-pool/api"
)

// Pool recycles up to a fixed number of equally sized slots.
//
// Each slot moves through never-carved -> outstanding (first Take, runs
// the initializer) -> free (Put) -> outstanding (Take, no initializer).
// Prealloc may carve a slot straight into the free state.
type Pool struct {
	objSize int
	nmax    int
	init    api.FallibleInitializer
	strict  bool

	store    *storage
	free     freeList
	freeBits *bitset.BitSet // set while a slot sits in the free list

	carved      int
	outstanding int
	destroyed   bool

	takes, puts, hits, misses      uint64
	exhausted, badReturns, initErr uint64
}

// New creates a pool of nmax slots of objSize bytes each. init, if not
// nil, runs once on every slot's zeroed memory before its first hand-out.
func New(objSize, nmax int, init api.Initializer, opts ...Option) (*Pool, error) {
	o := defaultOptions()
	applyOptions(o, opts)

	if err := validate(objSize, nmax, init, o); err != nil {
		return nil, err
	}

	chunkSlots := min(o.chunkSlots, nmax)
	p := &Pool{
		objSize:  objSize,
		nmax:     nmax,
		strict:   o.strictDestroy,
		store:    newStorage(objSize, nmax, chunkSlots, o.alloc),
		freeBits: bitset.New(uint(chunkSlots)),
	}
	switch {
	case o.fallible != nil:
		p.init = o.fallible
	case init != nil:
		p.init = func(slot []byte) error {
			init(slot)
			return nil
		}
	}
	p.free = newFreeList(o.order, p.store)

	if o.prealloc > 0 {
		if err := p.Prealloc(o.prealloc); err != nil {
			_ = p.store.release()
			return nil, err
		}
	}
	return p, nil
}

func validate(objSize, nmax int, init api.Initializer, o *options) error {
	bad := func(key string, v any) error {
		return api.ErrInvalidConfiguration.WithContext(key, v)
	}
	switch {
	case objSize <= 0:
		return bad("obj_size", objSize)
	case nmax <= 0:
		return bad("nmax", nmax)
	case nmax > math.MaxInt32:
		return bad("nmax", nmax)
	case o.chunkSlots <= 0:
		return bad("chunk_slots", o.chunkSlots)
	case min(o.chunkSlots, nmax) > math.MaxInt/objSize:
		return bad("chunk_bytes", "overflow")
	case o.prealloc < 0 || o.prealloc > nmax:
		return bad("prealloc", o.prealloc)
	case o.alloc == nil:
		return bad("allocator", nil)
	case o.order != OrderLIFO && o.order != OrderFIFO:
		return bad("order", o.order)
	case o.fallible != nil && init != nil:
		return bad("initializer", "both plain and fallible initializers set")
	}
	return nil
}

// Take hands out a free slot, or carves a new one while fewer than Cap
// slots exist. It returns api.ErrPoolExhausted when neither is possible.
// The slot has length and capacity ObjSize and keeps whatever content
// its previous holder left.
func (p *Pool) Take() ([]byte, error) {
	if p.destroyed {
		return nil, api.ErrPoolDestroyed
	}
	idx, ok := p.free.pop()
	if ok {
		p.freeBits.Clear(uint(idx))
		p.hits++
	} else {
		var err error
		if idx, err = p.carve(); err != nil {
			return nil, err
		}
		p.misses++
	}
	p.outstanding++
	p.takes++
	return p.store.slot(idx), nil
}

// carve materializes the next never-used slot and runs the initializer.
// Failures leave carved untouched.
func (p *Pool) carve() (int, error) {
	if p.carved >= p.nmax {
		p.exhausted++
		return -1, api.ErrPoolExhausted
	}
	if p.carved == p.store.reserved {
		if err := p.store.grow(); err != nil {
			return -1, api.Wrap(api.ErrAllocationFailure, err)
		}
		p.free.reserve(p.store.reserved)
	}
	idx := p.carved
	if p.init != nil {
		slot := p.store.slot(idx)
		if err := p.init(slot); err != nil {
			// the next attempt sees the same zeroed memory as this one
			clear(slot)
			p.initErr++
			return -1, api.Wrap(api.ErrInitializerFailed, err).WithContext("slot", idx)
		}
	}
	p.carved++
	return idx, nil
}

// Put returns a slot obtained from Take. The initializer is not re-run and
// the content is not scrubbed. Foreign addresses and double returns are
// rejected with api.ErrForeignSlot and api.ErrDoubleReturn, leaving the
// pool unchanged.
func (p *Pool) Put(slot []byte) error {
	if p.destroyed {
		return api.ErrPoolDestroyed
	}
	idx, ok := p.index(slot)
	if !ok {
		p.badReturns++
		return api.ErrForeignSlot
	}
	if p.freeBits.Test(uint(idx)) {
		p.badReturns++
		return api.ErrDoubleReturn
	}
	p.freeBits.Set(uint(idx))
	p.free.push(idx)
	p.outstanding--
	p.puts++
	return nil
}

// Prealloc carves slots into the free list until n are free or the pool
// reaches capacity. Slots carved before a failure stay available.
func (p *Pool) Prealloc(n int) error {
	if p.destroyed {
		return api.ErrPoolDestroyed
	}
	if n < 0 {
		return api.ErrInvalidConfiguration.WithContext("prealloc", n)
	}
	for p.free.len() < n && p.carved < p.nmax {
		idx, err := p.carve()
		if err != nil {
			return err
		}
		p.freeBits.Set(uint(idx))
		p.free.push(idx)
	}
	return nil
}

// Destroy releases all storage. Every slot handed out by this pool becomes
// invalid. Calling Destroy again is a no-op; other methods report
// api.ErrPoolDestroyed.
func (p *Pool) Destroy() error {
	if p.destroyed {
		return nil
	}
	if p.strict && p.outstanding > 0 {
		return api.ErrOutstandingSlots.WithContext("outstanding", p.outstanding)
	}
	p.destroyed = true
	p.free = newFreeList(OrderLIFO, p.store)
	p.freeBits = nil
	if err := p.store.release(); err != nil {
		return api.Wrap(api.ErrInternal, err).WithContext("op", "release")
	}
	return nil
}

// Owns reports whether slot is the start of a carved slot of this pool.
func (p *Pool) Owns(slot []byte) bool {
	if p.destroyed {
		return false
	}
	_, ok := p.index(slot)
	return ok
}

func (p *Pool) index(slot []byte) (int, bool) {
	if cap(slot) == 0 {
		return -1, false
	}
	idx, ok := p.store.locate(uintptr(unsafe.Pointer(unsafe.SliceData(slot))))
	if !ok || idx >= p.carved {
		return -1, false
	}
	return idx, true
}

// ObjSize returns the length of every slot.
func (p *Pool) ObjSize() int { return p.objSize }

// Cap returns the maximum number of slots the pool will ever carve.
func (p *Pool) Cap() int { return p.nmax }

// Carved returns how many slots have been initialized so far.
func (p *Pool) Carved() int { return p.carved }

// Outstanding returns the number of slots taken and not yet put back.
func (p *Pool) Outstanding() int { return p.outstanding }

// Free returns the number of slots ready for reuse.
func (p *Pool) Free() int { return p.free.len() }

// Destroyed reports whether Destroy has completed.
func (p *Pool) Destroyed() bool { return p.destroyed }

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() api.PoolStats {
	return api.PoolStats{
		ObjSize:     p.objSize,
		Capacity:    p.nmax,
		Carved:      p.carved,
		Free:        p.free.len(),
		Outstanding: p.outstanding,
		Chunks:      len(p.store.chunks),
		Bytes:       p.store.bytes,
		Takes:       p.takes,
		Puts:        p.puts,
		Hits:        p.hits,
		Misses:      p.misses,
		Exhausted:   p.exhausted,
		BadReturns:  p.badReturns,
		InitErrors:  p.initErr,
	}
}

var _ api.SlotPool = (*Pool)(nil)
