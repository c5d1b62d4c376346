package ready

import (
	"reflect"
	"runtime"
	"sync"
	"weak"
)

// Registry owns the member cache and the node cache.
//
// Create one per scene (or per process) with New and pass it to Initialize. The
// zero value is not usable.
type Registry struct {
	mu sync.Mutex

	members map[typeKey]any // typeKey -> []Member[T, N]
	nodes   nodeStore

	// cleanups holds the runtime cleanup registered for each weak instance key.
	cleanups map[any]runtime.Cleanup

	weakKeys  bool
	cacheSize int
	reporter  Reporter
	stats     Stats
}

type typeKey struct {
	host reflect.Type
	node reflect.Type
}

// Option configures a Registry.
type Option func(*Registry)

// WithReporter sets the diagnostic sink. A nil reporter is ignored.
func WithReporter(rep Reporter) Option {
	return func(r *Registry) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

// WithNodeCacheSize bounds the node cache to size entries, evicting the least
// recently used. size <= 0 keeps the cache unbounded.
func WithNodeCacheSize(size int) Option {
	return func(r *Registry) { r.cacheSize = size }
}

// WithoutWeakKeys keys the node cache by strong instance pointers. Entries then
// live until Release or a clear call, as they would in a plain map.
func WithoutWeakKeys() Option {
	return func(r *Registry) { r.weakKeys = false }
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		members:  make(map[typeKey]any),
		cleanups: make(map[any]runtime.Cleanup),
		weakKeys: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.reporter == nil {
		r.reporter = DefaultReporter()
	}
	r.nodes = newMapStore()
	if r.cacheSize > 0 {
		if s, err := newLRUStore(r.cacheSize); err == nil {
			r.nodes = s
		}
	}
	return r
}

// Stats is a snapshot of cache sizes and counters.
type Stats struct {
	// Types is the number of host types in the member cache.
	Types int
	// Nodes is the number of cached (instance, path) entries.
	Nodes int

	Hits        uint64
	Misses      uint64
	Resolutions uint64
	Skipped     uint64
	Failures    uint64
}

// Stats returns a snapshot.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats
	s.Types = len(r.members)
	s.Nodes = r.nodes.len()
	return s
}

// ClearNodeCaches drops every resolved node. Use it after the tree was rebuilt.
func (r *Registry) ClearNodeCaches() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nodes.purge()
	for k, c := range r.cleanups {
		c.Stop()
		delete(r.cleanups, k)
	}
}

// ClearMemberCaches drops every compiled member list, so the next Initialize
// re-reads the type's Table. Use it after member tables were redeclared.
func (r *Registry) ClearMemberCaches() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.members)
}

// ClearAllCaches is ClearNodeCaches followed by ClearMemberCaches.
func (r *Registry) ClearAllCaches() {
	r.ClearNodeCaches()
	r.ClearMemberCaches()
}

// ClearNodeFromCache drops the cached node for (inst, path) and reports whether
// an entry existed. Use it when a single dependency moved.
func ClearNodeFromCache[T any](r *Registry, inst *T, path string) bool {
	if r == nil || inst == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.nodes.remove(nodeKey{inst: instanceKeyOf(r, inst), path: path})
}

// Release drops every cached node for inst and returns how many were removed.
// Call it from the host's teardown hook when instances are pooled or outlive
// their tree.
func Release[T any](r *Registry, inst *T) int {
	if r == nil || inst == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := instanceKeyOf(r, inst)
	if c, ok := r.cleanups[key]; ok {
		c.Stop()
		delete(r.cleanups, key)
	}
	return r.nodes.removeInstance(key)
}

func instanceKeyOf[T any](r *Registry, inst *T) any {
	if r.weakKeys {
		return weak.Make(inst)
	}
	return inst
}

// track registers a cleanup dropping inst's entries once inst is unreachable.
// r.mu must be held.
func track[T any](r *Registry, inst *T, key any) {
	if !r.weakKeys {
		return
	}
	if _, ok := r.cleanups[key]; ok {
		return
	}
	r.cleanups[key] = runtime.AddCleanup(inst, r.expire, key)
}

func (r *Registry) expire(key any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cleanups, key)
	r.nodes.removeInstance(key)
}
