package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GrowCapsAtMax(t *testing.T) {
	s := newStorage(8, 10, 4, HeapAllocator{})
	for i := 0; i < 3; i++ {
		require.NoError(t, s.grow())
	}
	assert.Equal(t, 10, s.reserved)
	assert.Equal(t, int64(80), s.bytes)
	assert.Equal(t, 2, s.chunks[2].slots)
	assert.Error(t, s.grow())
	assert.Len(t, s.chunks, 3)
}

func TestStorage_LocateRoundTrip(t *testing.T) {
	s := newStorage(24, 50, 7, HeapAllocator{})
	for s.reserved < s.nmax {
		require.NoError(t, s.grow())
	}
	for i := 0; i < s.nmax; i++ {
		slot := s.slot(i)
		require.Len(t, slot, 24)
		require.Equal(t, 24, cap(slot))
		got, ok := s.locate(uintptr(unsafe.Pointer(unsafe.SliceData(slot))))
		require.True(t, ok)
		require.Equal(t, i, got)
	}
}

func TestStorage_LocateRejectsStrayAddresses(t *testing.T) {
	s := newStorage(16, 4, 4, HeapAllocator{})
	require.NoError(t, s.grow())
	base := s.chunks[0].base

	for name, a := range map[string]uintptr{
		"below":    base - 16,
		"interior": base + 3,
		"end":      base + 64,
	} {
		_, ok := s.locate(a)
		assert.Falsef(t, ok, "%s", name)
	}
}

func TestStorage_LocateEmpty(t *testing.T) {
	s := newStorage(16, 4, 4, HeapAllocator{})
	_, ok := s.locate(0x1000)
	assert.False(t, ok)
}

func TestStorage_ByAddrSorted(t *testing.T) {
	s := newStorage(32, 64, 1, HeapAllocator{})
	for s.reserved < s.nmax {
		require.NoError(t, s.grow())
	}
	for i := 1; i < len(s.byAddr); i++ {
		assert.Less(t, s.chunks[s.byAddr[i-1]].base, s.chunks[s.byAddr[i]].base)
	}
}

func TestStorage_Release(t *testing.T) {
	s := newStorage(8, 8, 2, HeapAllocator{})
	require.NoError(t, s.grow())
	require.NoError(t, s.grow())
	require.NoError(t, s.release())
	assert.Empty(t, s.chunks)
	assert.Zero(t, s.reserved)
	assert.Zero(t, s.bytes)
}

type shortAllocator struct{ freed int }

func (a *shortAllocator) Alloc(size int) ([]byte, error) { return make([]byte, size/2), nil }
func (a *shortAllocator) Free([]byte) error              { a.freed++; return nil }

func TestStorage_ShortChunkRejected(t *testing.T) {
	a := &shortAllocator{}
	s := newStorage(8, 8, 4, a)
	assert.Error(t, s.grow())
	assert.Equal(t, 1, a.freed)
	assert.Zero(t, s.reserved)
}
