package ready

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// nodeKey identifies one resolved node: an instance handle plus the marker path.
// inst is a weak.Pointer[T] (or *T with weak keys disabled), boxed so one store
// serves every host type.
type nodeKey struct {
	inst any
	path string
}

// nodeStore holds resolved nodes. Implementations are not synchronized; Registry
// serializes access.
type nodeStore interface {
	get(k nodeKey) (any, bool)
	put(k nodeKey, node any)
	remove(k nodeKey) bool
	removeInstance(inst any) int
	purge()
	len() int
}

// mapStore is the unbounded default, grouped by instance so Release is O(paths).
type mapStore struct {
	byInst map[any]map[string]any
	n      int
}

func newMapStore() *mapStore {
	return &mapStore{byInst: make(map[any]map[string]any)}
}

func (s *mapStore) get(k nodeKey) (any, bool) {
	paths, ok := s.byInst[k.inst]
	if !ok {
		return nil, false
	}
	v, ok := paths[k.path]
	return v, ok
}

func (s *mapStore) put(k nodeKey, node any) {
	paths, ok := s.byInst[k.inst]
	if !ok {
		paths = make(map[string]any)
		s.byInst[k.inst] = paths
	}
	if _, exists := paths[k.path]; !exists {
		s.n++
	}
	paths[k.path] = node
}

func (s *mapStore) remove(k nodeKey) bool {
	paths, ok := s.byInst[k.inst]
	if !ok {
		return false
	}
	if _, ok := paths[k.path]; !ok {
		return false
	}
	delete(paths, k.path)
	s.n--
	if len(paths) == 0 {
		delete(s.byInst, k.inst)
	}
	return true
}

func (s *mapStore) removeInstance(inst any) int {
	paths, ok := s.byInst[inst]
	if !ok {
		return 0
	}
	delete(s.byInst, inst)
	s.n -= len(paths)
	return len(paths)
}

func (s *mapStore) purge() {
	clear(s.byInst)
	s.n = 0
}

func (s *mapStore) len() int { return s.n }

// lruStore bounds the number of resolved nodes; the least recently used entry
// is evicted first. An evicted entry is simply looked up again on next use.
type lruStore struct {
	cache *lru.Cache[nodeKey, any]
}

func newLRUStore(size int) (*lruStore, error) {
	c, err := lru.New[nodeKey, any](size)
	if err != nil {
		return nil, err
	}
	return &lruStore{cache: c}, nil
}

func (s *lruStore) get(k nodeKey) (any, bool) { return s.cache.Get(k) }

func (s *lruStore) put(k nodeKey, node any) { s.cache.Add(k, node) }

func (s *lruStore) remove(k nodeKey) bool { return s.cache.Remove(k) }

func (s *lruStore) removeInstance(inst any) int {
	n := 0
	for _, k := range s.cache.Keys() {
		if k.inst == inst && s.cache.Remove(k) {
			n++
		}
	}
	return n
}

func (s *lruStore) purge() { s.cache.Purge() }

func (s *lruStore) len() int { return s.cache.Len() }
