// File: pool/storage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Chunked slot storage. Slot i lives in chunk i/chunkSlots; chunks are
// never moved or released before release(), so slot addresses are stable.

package pool

import (
	"cmp"
	"errors"
	"slices"
	"unsafe"
)

type chunk struct {
	mem   []byte
	base  uintptr
	first int // index of the chunk's first slot
	slots int
}

type storage struct {
	objSize    int
	nmax       int
	chunkSlots int
	alloc      Allocator

	chunks   []chunk // allocation order
	byAddr   []int   // chunk indices sorted by base address
	reserved int     // slots backed by memory
	bytes    int64
}

func newStorage(objSize, nmax, chunkSlots int, alloc Allocator) *storage {
	return &storage{
		objSize:    objSize,
		nmax:       nmax,
		chunkSlots: chunkSlots,
		alloc:      alloc,
	}
}

// grow reserves the next chunk. On failure nothing changes.
func (s *storage) grow() error {
	n := min(s.chunkSlots, s.nmax-s.reserved)
	if n <= 0 {
		return errors.New("storage already at capacity")
	}
	size := n * s.objSize
	mem, err := s.alloc.Alloc(size)
	if err != nil {
		return err
	}
	if len(mem) < size {
		_ = s.alloc.Free(mem)
		return errors.New("allocator returned short chunk")
	}
	c := chunk{
		mem:   mem,
		base:  uintptr(unsafe.Pointer(unsafe.SliceData(mem))),
		first: s.reserved,
		slots: n,
	}
	s.chunks = append(s.chunks, c)
	id := len(s.chunks) - 1
	pos, _ := slices.BinarySearchFunc(s.byAddr, c.base, func(i int, base uintptr) int {
		return cmp.Compare(s.chunks[i].base, base)
	})
	s.byAddr = slices.Insert(s.byAddr, pos, id)
	s.reserved += n
	s.bytes += int64(size)
	return nil
}

// slot returns the full-capacity view of slot idx.
func (s *storage) slot(idx int) []byte {
	c := &s.chunks[idx/s.chunkSlots]
	off := (idx - c.first) * s.objSize
	return c.mem[off : off+s.objSize : off+s.objSize]
}

func (s *storage) ptr(idx int) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(s.slot(idx)))
}

// locate maps the address of a slot's first byte back to its index.
// Interior and out-of-range addresses report false.
func (s *storage) locate(addr uintptr) (int, bool) {
	// first chunk whose base is above addr
	pos, _ := slices.BinarySearchFunc(s.byAddr, addr, func(i int, a uintptr) int {
		if s.chunks[i].base <= a {
			return -1
		}
		return 1
	})
	if pos == 0 {
		return -1, false
	}
	c := &s.chunks[s.byAddr[pos-1]]
	off := addr - c.base
	if off >= uintptr(c.slots*s.objSize) || off%uintptr(s.objSize) != 0 {
		return -1, false
	}
	return c.first + int(off/uintptr(s.objSize)), true
}

// release frees every chunk and forgets them.
func (s *storage) release() error {
	var errs []error
	for i := range s.chunks {
		if err := s.alloc.Free(s.chunks[i].mem); err != nil {
			errs = append(errs, err)
		}
		s.chunks[i].mem = nil
	}
	s.chunks = nil
	s.byAddr = nil
	s.reserved = 0
	s.bytes = 0
	return errors.Join(errs...)
}
