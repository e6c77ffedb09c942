// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-pool components.

package benchmarks

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-pool/pool"
)

const benchObjSize = 512

// BenchmarkPoolTakePut measures the steady-state recycle path.
func BenchmarkPoolTakePut(b *testing.B) {
	for _, order := range []pool.Order{pool.OrderLIFO, pool.OrderFIFO} {
		b.Run(order.String(), func(b *testing.B) {
			p, err := pool.New(benchObjSize, 64, nil, pool.WithOrder(order), pool.WithPrealloc(64))
			if err != nil {
				b.Fatal(err)
			}
			defer p.Destroy()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := p.Take()
				if err != nil {
					b.Fatal(err)
				}
				if err := p.Put(s); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPoolCarve measures first-use carving including chunk growth.
func BenchmarkPoolCarve(b *testing.B) {
	const n = 4096
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, err := pool.New(benchObjSize, n, nil)
		if err != nil {
			b.Fatal(err)
		}
		for j := 0; j < n; j++ {
			if _, err := p.Take(); err != nil {
				b.Fatal(err)
			}
		}
		p.Destroy()
	}
}

// BenchmarkLockedParallel measures the mutex-guarded pool under contention.
func BenchmarkLockedParallel(b *testing.B) {
	p, err := pool.New(benchObjSize, 1024, nil, pool.WithPrealloc(1024))
	if err != nil {
		b.Fatal(err)
	}
	lp := pool.NewLocked(p)
	defer lp.Destroy()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s, err := lp.Take()
			if err != nil {
				b.Error(err)
				return
			}
			if err := lp.Put(s); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

// BenchmarkSyncPoolBaseline is the sync.Pool reference for the same size.
func BenchmarkSyncPoolBaseline(b *testing.B) {
	sp := sync.Pool{New: func() any {
		s := make([]byte, benchObjSize)
		return &s
	}}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s := sp.Get().(*[]byte)
			sp.Put(s)
		}
	})
}
