package pool_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

func TestLocked_ConcurrentTakersNeverAlias(t *testing.T) {
	const (
		workers = 8
		rounds  = 2000
		nmax    = 16
	)
	p, err := pool.New(16, nmax, nil, pool.WithChunkSlots(4))
	require.NoError(t, err)
	lp := pool.NewLocked(p)

	var (
		mu    sync.Mutex
		inUse = map[uintptr]bool{}
	)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < rounds; i++ {
				s, err := lp.Take()
				if errors.Is(err, api.ErrPoolExhausted) {
					runtime.Gosched()
					continue
				}
				if err != nil {
					return err
				}
				mu.Lock()
				if inUse[addr(s)] {
					mu.Unlock()
					return errors.New("slot handed to two holders")
				}
				inUse[addr(s)] = true
				mu.Unlock()

				s[0]++

				mu.Lock()
				delete(inUse, addr(s))
				mu.Unlock()
				if err := lp.Put(s); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	st := lp.Stats()
	assert.LessOrEqual(t, st.Carved, nmax)
	assert.Zero(t, st.Outstanding)
	assert.Equal(t, st.Takes, st.Puts)
	require.NoError(t, lp.Destroy())
}

func TestLocked_Delegates(t *testing.T) {
	p, err := pool.New(8, 2, nil)
	require.NoError(t, err)
	lp := pool.NewLocked(p)
	assert.Equal(t, 8, lp.ObjSize())
	assert.Equal(t, 2, lp.Cap())

	require.NoError(t, lp.Prealloc(2))
	s, err := lp.Take()
	require.NoError(t, err)
	assert.True(t, lp.Owns(s))
	require.NoError(t, lp.Put(s))
	assert.ErrorIs(t, lp.Put(s), api.ErrDoubleReturn)
	require.NoError(t, lp.Destroy())
	_, err = lp.Take()
	assert.ErrorIs(t, err, api.ErrPoolDestroyed)
}
