// Package ready populates members of a host type with references to other nodes
// in the same tree, looked up by relative path once the host is ready.
//
// Each host type declares its marked members in a static Table:
//
//	var hudMembers = ready.Declare[Hud, scene.Node]().
//		Field("scoreLabel", "ScoreLabel", ready.Assign(func(h *Hud, n scene.Node) { h.scoreLabel = n })).
//		Property("Title", "TitleNode", nil) // getter only
//
// and calls Initialize from its ready hook:
//
//	res, err := ready.Initialize(reg, hud, hudMembers)
//
// The host pointer must implement Lookup[N]; the package never walks the tree
// itself. Tables can be written by hand or generated by cmd/onreadygen from
// struct tags.
//
// Caching
//
// A Registry keeps two caches:
//
//   - member cache: host type -> compiled member list (filled once per type)
//   - node cache: (host instance, path) -> resolved node (filled once per pair)
//
// Node-cache entries are keyed by a weak pointer to the host and expire once the
// host becomes unreachable. Release drops an instance's entries eagerly. A second
// Initialize on the same instance reuses cached nodes, even if the tree moved;
// call ClearNodeFromCache or Release to force a fresh lookup.
//
// Cached nodes are held strongly. If a node refers back to its host (a parent
// pointer, say), the host stays reachable through the cache and never expires;
// call Release when such a host leaves the tree.
//
// Failure policy
//
//   - lookup failure: Initialize stops and returns a *ResolveError; members before
//     the failing one stay assigned. A panicking GetNode is reported the same
//     way, wrapping ErrLookupPanic.
//   - read-only property: the member is left untouched, a Diagnostic is reported,
//     and processing continues. The Result records it as SkippedNoSetter.
//
// Concurrency
//
// Callers must serialize Initialize calls, the same way a scene tree is only
// touched from its main thread. The registry guards its maps with a mutex only
// because weak-key cleanups run on a runtime goroutine.
package ready
