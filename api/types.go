// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

// PoolStats provides a standard layout for pool statistics reporting.
type PoolStats struct {
	ObjSize     int
	Capacity    int
	Carved      int // slots materialized so far
	Free        int
	Outstanding int
	Chunks      int
	Bytes       int64 // storage reserved across all chunks

	Takes      uint64
	Puts       uint64
	Hits       uint64 // takes served from the free list
	Misses     uint64 // takes that carved a new slot
	Exhausted  uint64
	BadReturns uint64
	InitErrors uint64
}

// Utilization returns the fraction of capacity currently lent out.
func (s PoolStats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Outstanding) / float64(s.Capacity)
}
