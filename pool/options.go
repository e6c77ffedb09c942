// File: pool/options.go
// Package pool defines functional options for Pool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-pool/api"

// DefaultChunkSlots is the number of slots reserved per storage chunk.
const DefaultChunkSlots = 64

// Option customizes pool initialization.
type Option func(*options)

type options struct {
	chunkSlots    int
	order         Order
	alloc         Allocator
	prealloc      int
	fallible      api.FallibleInitializer
	strictDestroy bool
}

func defaultOptions() *options {
	return &options{
		chunkSlots: DefaultChunkSlots,
		order:      OrderLIFO,
		alloc:      HeapAllocator{},
	}
}

func applyOptions(o *options, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
}

// WithChunkSlots sets how many slots each storage chunk holds. Values
// above the pool capacity are clamped; a value equal to the capacity
// reserves everything in one chunk.
func WithChunkSlots(n int) Option {
	return func(o *options) {
		o.chunkSlots = n
	}
}

// WithOrder selects the free-list policy.
func WithOrder(order Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithAllocator overrides the chunk allocator.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithPrealloc carves and initializes n slots at creation.
func WithPrealloc(n int) Option {
	return func(o *options) {
		o.prealloc = n
	}
}

// WithFallibleInitializer installs an initializer that may reject a slot.
// It replaces the plain initializer passed to New, which must then be nil.
func WithFallibleInitializer(fn api.FallibleInitializer) Option {
	return func(o *options) {
		o.fallible = fn
	}
}

// WithStrictDestroy makes Destroy refuse to run while slots are outstanding.
func WithStrictDestroy() Option {
	return func(o *options) {
		o.strictDestroy = true
	}
}
