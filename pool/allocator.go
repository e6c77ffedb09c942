// File: pool/allocator.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral chunk allocators for slot storage. Concrete page-backed
// allocators are selected at build time through platform-specific files.

package pool

import (
	"errors"
	"fmt"
	"strings"
)

// Allocator obtains and releases the contiguous chunks that back pool slots.
// Memory returned by Alloc must be zeroed and must not move until Free.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(mem []byte) error
}

var errBadChunkSize = errors.New("chunk size must be positive")

// HeapAllocator carves chunks from the Go heap. The GC never relocates
// them, so slot addresses stay stable while the pool holds the chunk.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errBadChunkSize
	}
	return make([]byte, size), nil
}

// Free drops nothing; the chunk is reclaimed once the pool forgets it.
func (HeapAllocator) Free([]byte) error { return nil }

// NewMmapAllocator returns an allocator backed by anonymous pages outside
// the Go heap. Slots living there are invisible to the GC, so they must
// not hold the only reference to heap objects. On platforms without a
// page allocator it falls back to HeapAllocator.
func NewMmapAllocator() Allocator {
	return newPageAllocator()
}

// Backing names accepted by ParseBacking.
const (
	BackingHeap = "heap"
	BackingMmap = "mmap"
)

// ParseBacking maps a configuration name to an Allocator.
func ParseBacking(name string) (Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackingHeap:
		return HeapAllocator{}, nil
	case BackingMmap:
		return NewMmapAllocator(), nil
	default:
		return nil, fmt.Errorf("unknown backing %q", name)
	}
}
