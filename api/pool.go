// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract fixed-size slot pool contract.

package api

// SlotPool hands out fixed-size byte slots up to a hard capacity.
type SlotPool interface {
	// Take returns a slot of ObjSize bytes, or ErrPoolExhausted.
	Take() ([]byte, error)

	// Put returns a slot previously obtained from Take.
	Put(slot []byte) error

	// Stats returns a point-in-time snapshot of pool counters.
	Stats() PoolStats

	// Destroy releases all storage; the pool must not be used afterward.
	Destroy() error
}

// Initializer prepares a slot's memory before its first hand-out.
type Initializer func(slot []byte)

// FallibleInitializer is an Initializer that may refuse a slot.
type FallibleInitializer func(slot []byte) error
