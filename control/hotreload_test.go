package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
)

func writePools(t *testing.T, path, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
}

func TestReloader_AppliesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	writePools(t, path, "pools:\n  req:\n    object_size: 64\n    max_objects: 8\n")

	reg, _ := newTestRegistry(t)
	target := ConfigSetterFunc(reg.Apply)
	rl := NewReloader(path, target, nil)

	var outcomes []error
	rl.RegisterReloadHook(func(err error) { outcomes = append(outcomes, err) })

	require.NoError(t, rl.Reload())
	assert.Equal(t, []string{"req"}, reg.Names())

	// growing an existing pool is refused and the hook sees it
	writePools(t, path, "pools:\n  req:\n    object_size: 64\n    max_objects: 16\n")
	err := rl.Reload()
	assert.ErrorIs(t, err, api.ErrInvalidConfiguration)
	cfg, _ := reg.Config("req")
	assert.Equal(t, 8, cfg.MaxObjects)

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0])
	assert.ErrorIs(t, outcomes[1], api.ErrInvalidConfiguration)
}

func TestReloader_Errors(t *testing.T) {
	dir := t.TempDir()
	called := false
	target := ConfigSetterFunc(func(map[string]any) error {
		called = true
		return nil
	})

	assert.Error(t, NewReloader(filepath.Join(dir, "missing.yaml"), target, nil).Reload())

	bad := filepath.Join(dir, "bad.yaml")
	writePools(t, bad, "pools:\n  req:\n    object_size: 64\n    max_objects: 8\n    colour: red\n")
	assert.ErrorIs(t, NewReloader(bad, target, nil).Reload(), api.ErrInvalidConfiguration)
	assert.False(t, called)
}
