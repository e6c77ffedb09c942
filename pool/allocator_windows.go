//go:build windows

// File: pool/allocator_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// virtualAllocator commits chunks with VirtualAlloc.
type virtualAllocator struct{}

func newPageAllocator() Allocator { return virtualAllocator{} }

func (virtualAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errBadChunkSize
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("VirtualAlloc %d bytes: %w", size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (virtualAllocator) Free(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := windows.VirtualFree(uintptr(unsafe.Pointer(unsafe.SliceData(mem))), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("VirtualFree: %w", err)
	}
	return nil
}
