// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity slot pool for hioload-pool.
// A Pool hands out equally sized byte slots up to a hard ceiling, grows its
// storage lazily in chunks, runs a one-time initializer on each slot before
// its first use and detects foreign or repeated returns.
// Pool itself does no locking; wrap it in Locked or keep one per worker.
// See pool.go, storage.go, freelist.go for implementation details.
package pool
