// control/hotreload.go
// Re-reads a pools document from disk and applies it to a config target.
// Reload runs hooks synchronously so callers and tests observe the result.

package control

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// ConfigSetter accepts a config snapshot; api.Control implementations
// satisfy it.
type ConfigSetter interface {
	SetConfig(cfg map[string]any) error
}

// ConfigSetterFunc adapts a function to ConfigSetter.
type ConfigSetterFunc func(cfg map[string]any) error

func (f ConfigSetterFunc) SetConfig(cfg map[string]any) error { return f(cfg) }

// Reloader loads a YAML pools file and pushes it into a ConfigSetter.
type Reloader struct {
	path   string
	target ConfigSetter
	logger *slog.Logger

	mu    sync.Mutex
	hooks []func(error)
}

// NewReloader binds path to target. A nil logger discards output.
func NewReloader(path string, target ConfigSetter, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reloader{path: path, target: target, logger: logger.With("file", path)}
}

// RegisterReloadHook adds a listener called after every Reload with its
// outcome.
func (r *Reloader) RegisterReloadHook(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Reload reads the file and applies it. Reloads are serialized.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.reload()
	if err != nil {
		r.logger.Warn("pools reload failed", "error", err)
	} else {
		r.logger.Info("pools reloaded")
	}
	for _, fn := range r.hooks {
		fn(err)
	}
	return err
}

func (r *Reloader) reload() error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open pools file: %w", err)
	}
	defer f.Close()

	cfgs, err := LoadPoolConfigs(f)
	if err != nil {
		return err
	}
	return r.target.SetConfig(ToSnapshot(cfgs))
}
