//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

// File: pool/allocator_stub.go
// Author: momentics <momentics@gmail.com>
//
// Heap fallback for platforms without a page allocator.

package pool

func newPageAllocator() Allocator { return HeapAllocator{} }
