// control/decode.go
// Author: momentics <momentics@gmail.com>
//
// Pool configuration decoding from generic maps and YAML documents.

package control

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/pool"
)

// DecodePoolConfig converts v into a pool.Config. v may already be a
// pool.Config (or pointer to one) or a map with the config's snake_case
// keys; string values such as "64" or "true" are accepted. Unknown keys
// are rejected.
func DecodePoolConfig(v any) (pool.Config, error) {
	switch c := v.(type) {
	case pool.Config:
		return c, nil
	case *pool.Config:
		if c == nil {
			return pool.Config{}, api.ErrInvalidConfiguration.WithContext("config", nil)
		}
		return *c, nil
	}

	var cfg pool.Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return pool.Config{}, err
	}
	if err := dec.Decode(v); err != nil {
		return pool.Config{}, api.Wrap(api.ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

type poolsDocument struct {
	Pools map[string]pool.Config `yaml:"pools"`
}

// LoadPoolConfigs reads a YAML document of the form
//
//	pools:
//	  requests:
//	    object_size: 256
//	    max_objects: 1024
//
// and validates every entry.
func LoadPoolConfigs(r io.Reader) (map[string]pool.Config, error) {
	var doc poolsDocument
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, api.Wrap(api.ErrInvalidConfiguration, fmt.Errorf("decode pools yaml: %w", err))
	}
	for name, cfg := range doc.Pools {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("pool %q: %w", name, err)
		}
	}
	if doc.Pools == nil {
		doc.Pools = map[string]pool.Config{}
	}
	return doc.Pools, nil
}

// ToSnapshot turns decoded configs into ConfigStore values.
func ToSnapshot(cfgs map[string]pool.Config) map[string]any {
	out := make(map[string]any, len(cfgs))
	for name, cfg := range cfgs {
		out[name] = cfg
	}
	return out
}
