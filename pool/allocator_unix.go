//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: pool/allocator_unix.go
// Author: momentics <momentics@gmail.com>
//
// Anonymous private mappings for slot chunks on unix-like systems.

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type mmapAllocator struct{}

func newPageAllocator() Allocator { return mmapAllocator{} }

func (mmapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errBadChunkSize
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return mem, nil
}

func (mmapAllocator) Free(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
