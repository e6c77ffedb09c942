// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration control, and debug introspection layer
// for hioload-pool. Everything the core pool deliberately does not do lives here.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads and reload listeners (ConfigStore)
//   - Pool config decoding from maps and YAML
//   - A named pool Registry with structured logging
//   - Metrics snapshots and a Prometheus collector
//   - Debug probes for pools and the platform
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
