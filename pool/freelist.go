// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
//
// Free-list policies. Both hold only initialized, returned slots.

package pool

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/eapache/queue"
)

// Order selects which free slot Take hands out first. Callers must not
// depend on the exact slot returned.
type Order int

const (
	// OrderLIFO reuses the most recently returned slot (cache-warm).
	OrderLIFO Order = iota
	// OrderFIFO reuses the least recently returned slot.
	OrderFIFO
)

func (o Order) String() string {
	switch o {
	case OrderLIFO:
		return "lifo"
	case OrderFIFO:
		return "fifo"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps "lifo"/"fifo" (case-insensitive, empty means lifo).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lifo":
		return OrderLIFO, nil
	case "fifo":
		return OrderFIFO, nil
	default:
		return 0, fmt.Errorf("unknown free-list order %q", s)
	}
}

type freeList interface {
	push(idx int)
	pop() (int, bool)
	len() int
	// reserve makes room for n entries so push does not allocate.
	reserve(n int)
}

func newFreeList(o Order, s *storage) freeList {
	if o == OrderFIFO {
		return &queueList{q: queue.New(), store: s}
	}
	return &stackList{}
}

type stackList struct {
	idx []int32
}

func (l *stackList) push(idx int) { l.idx = append(l.idx, int32(idx)) }

func (l *stackList) pop() (int, bool) {
	n := len(l.idx)
	if n == 0 {
		return -1, false
	}
	idx := l.idx[n-1]
	l.idx = l.idx[:n-1]
	return int(idx), true
}

func (l *stackList) len() int { return len(l.idx) }

func (l *stackList) reserve(n int) {
	if cap(l.idx) < n {
		grown := make([]int32, len(l.idx), n)
		copy(grown, l.idx)
		l.idx = grown
	}
}

// queueList keeps slot addresses rather than indices: a pointer fits in
// an interface without boxing, so Add does not allocate per element.
type queueList struct {
	q     *queue.Queue
	store *storage
}

func (l *queueList) push(idx int) { l.q.Add(l.store.ptr(idx)) }

func (l *queueList) pop() (int, bool) {
	if l.q.Length() == 0 {
		return -1, false
	}
	p := l.q.Remove().(unsafe.Pointer)
	return l.store.locate(uintptr(p))
}

func (l *queueList) len() int { return l.q.Length() }

// reserve is a no-op: the ring buffer sizes itself.
func (l *queueList) reserve(int) {}
