// Package onready binds marked struct members to nodes of a host's tree.
//
// A host type declares which of its members should be filled from which node
// paths. When the host is ready, one call resolves every path, assigns the
// fields and writable properties, and reports properties that are marked but
// cannot be written.
//
// The repository is organised as:
//
//   - ready: the runtime (member tables, registry caches, Initialize)
//   - ready/promstats: a Prometheus collector over registry statistics
//   - cmd/onreadygen: generates member tables from struct tags and getter directives
//   - examples/scene, examples/hud: a small node tree and a host wired against it
//
// Wiring stays explicit: tables are declared in code (by hand or generated),
// registries are passed around as values, and nothing is discovered through
// reflection at runtime.
package onready
