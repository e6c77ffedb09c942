package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"": OrderLIFO, "lifo": OrderLIFO, " FIFO ": OrderFIFO} {
		got, err := ParseOrder(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseOrder("random")
	assert.Error(t, err)
	assert.Equal(t, "fifo", OrderFIFO.String())
	assert.Equal(t, "Order(9)", Order(9).String())
}

func TestStackList(t *testing.T) {
	l := &stackList{}
	l.reserve(4)
	assert.Equal(t, 4, cap(l.idx))
	for i := 0; i < 3; i++ {
		l.push(i)
	}
	l.reserve(2) // never shrinks
	assert.Equal(t, 4, cap(l.idx))
	for want := 2; want >= 0; want-- {
		got, ok := l.pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := l.pop()
	assert.False(t, ok)
}

func TestQueueList(t *testing.T) {
	s := newStorage(4, 40, 8, HeapAllocator{})
	for s.reserved < s.nmax {
		require.NoError(t, s.grow())
	}
	l := newFreeList(OrderFIFO, s)
	for i := 0; i < 40; i++ {
		l.push(i)
	}
	assert.Equal(t, 40, l.len())
	for want := 0; want < 40; want++ {
		got, ok := l.pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := l.pop()
	assert.False(t, ok)
}

func TestStackPushDoesNotAllocateAfterReserve(t *testing.T) {
	l := &stackList{}
	l.reserve(16)
	allocs := testing.AllocsPerRun(100, func() {
		l.push(1)
		l.pop()
	})
	assert.Zero(t, allocs)
}
