// File: pool/config.go
// Author: momentics <momentics@gmail.com>
//
// Declarative pool configuration, decodable from YAML or generic maps.

package pool

import (
	"strings"

	"github.com/momentics/hioload-pool/api"
)

// Config describes a pool. Zero values pick the defaults of New.
type Config struct {
	ObjectSize    int    `yaml:"object_size" mapstructure:"object_size"`
	MaxObjects    int    `yaml:"max_objects" mapstructure:"max_objects"`
	ChunkSlots    int    `yaml:"chunk_slots" mapstructure:"chunk_slots"`
	Prealloc      int    `yaml:"prealloc" mapstructure:"prealloc"`
	Order         string `yaml:"order" mapstructure:"order"`
	Backing       string `yaml:"backing" mapstructure:"backing"`
	StrictDestroy bool   `yaml:"strict_destroy" mapstructure:"strict_destroy"`
}

// Options translates the optional fields into construction options.
func (c Config) Options() ([]Option, error) {
	order, err := ParseOrder(c.Order)
	if err != nil {
		return nil, api.Wrap(api.ErrInvalidConfiguration, err)
	}
	alloc, err := ParseBacking(c.Backing)
	if err != nil {
		return nil, api.Wrap(api.ErrInvalidConfiguration, err)
	}
	opts := []Option{WithOrder(order), WithAllocator(alloc)}
	if c.ChunkSlots != 0 {
		opts = append(opts, WithChunkSlots(c.ChunkSlots))
	}
	if c.Prealloc != 0 {
		opts = append(opts, WithPrealloc(c.Prealloc))
	}
	if c.StrictDestroy {
		opts = append(opts, WithStrictDestroy())
	}
	return opts, nil
}

// Normalize returns c with order and backing names canonicalized and
// defaults filled in, so equivalent configurations compare equal.
// Unrecognized names are only lowercased; Validate still rejects them.
func (c Config) Normalize() Config {
	n := c
	n.Order = strings.ToLower(strings.TrimSpace(c.Order))
	if o, err := ParseOrder(c.Order); err == nil {
		n.Order = o.String()
	}
	n.Backing = strings.ToLower(strings.TrimSpace(c.Backing))
	if n.Backing == "" {
		n.Backing = BackingHeap
	}
	if n.ChunkSlots == 0 {
		n.ChunkSlots = DefaultChunkSlots
	}
	if n.MaxObjects > 0 && n.ChunkSlots > n.MaxObjects {
		n.ChunkSlots = n.MaxObjects
	}
	return n
}

// SameLayout reports whether c and other build identical pools. Prealloc
// only matters at creation and is ignored.
func (c Config) SameLayout(other Config) bool {
	a, b := c.Normalize(), other.Normalize()
	a.Prealloc, b.Prealloc = 0, 0
	return a == b
}

// Validate checks the configuration without allocating storage.
func (c Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	o := defaultOptions()
	applyOptions(o, opts)
	return validate(c.ObjectSize, c.MaxObjects, nil, o)
}

// NewFromConfig builds a pool from cfg. extra options are applied last.
func NewFromConfig(cfg Config, init api.Initializer, extra ...Option) (*Pool, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(cfg.ObjectSize, cfg.MaxObjects, init, append(opts, extra...)...)
}
