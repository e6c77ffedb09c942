package adapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/adapters"
	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

func TestControlAdapterBasic(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	assert.Empty(t, ctrl.GetConfig(), "expected empty config on init")

	called := false
	ctrl.OnReload(func() { called = true })

	err := ctrl.SetConfig(map[string]any{
		"requests": map[string]any{"object_size": 64, "max_objects": 2},
	})
	require.NoError(t, err)
	assert.True(t, called, "reload hook not called")

	p, ok := ctrl.Pool("requests")
	require.True(t, ok)
	s, err := p.Take()
	require.NoError(t, err)
	assert.Len(t, s, 64)

	stats := ctrl.Stats()
	assert.Equal(t, 1, stats["pool.requests.outstanding"])
	assert.Equal(t, []string{"requests"}, stats["debug.pools.names"])
	assert.Contains(t, stats, "debug.platform.cpus")

	require.NoError(t, p.Put(s))
	require.NoError(t, ctrl.Close())
	_, ok = ctrl.Pool("requests")
	assert.False(t, ok)
}

func TestControlAdapterRejectsResize(t *testing.T) {
	ctrl := adapters.NewControlAdapter()
	require.NoError(t, ctrl.SetConfig(map[string]any{
		"conns": pool.Config{ObjectSize: 8, MaxObjects: 4},
	}))
	err := ctrl.SetConfig(map[string]any{
		"conns": pool.Config{ObjectSize: 8, MaxObjects: 8},
	})
	assert.ErrorIs(t, err, api.ErrInvalidConfiguration)

	p, ok := ctrl.Registry().Get("conns")
	require.True(t, ok)
	assert.Equal(t, 4, p.Cap())
	ctrl.SetMetric("custom", 1)
	assert.Equal(t, 1, ctrl.Stats()["custom"])
}
