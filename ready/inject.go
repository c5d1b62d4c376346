package ready

import (
	"fmt"
	"reflect"
)

// Initialize assigns every member declared in table on inst.
//
// For each member, in table order (fields, then properties), the node at the
// member's path is taken from the registry or, on a miss, looked up with
// inst.GetNode and cached under (inst, path). Then:
//
//   - fields and properties with a setter receive the node;
//   - properties without a setter are left untouched, a Diagnostic is reported,
//     and processing continues;
//   - a failed lookup stops the call with a *ResolveError; a writer error stops
//     it with an *AssignError. Members already assigned keep their values.
//
// A table with no members is a no-op that touches neither cache.
//
// The returned Result is non-nil whenever r, inst and table are non-nil, even
// on error.
func Initialize[T any, N any, PT interface {
	*T
	Lookup[N]
}](r *Registry, inst PT, table *Table[T, N]) (*Result, error) {
	if r == nil {
		return nil, ErrNilRegistry
	}
	if inst == nil {
		return nil, ErrNilInstance
	}
	if table == nil {
		return nil, ErrNilTable
	}

	res := &Result{Type: typeName[T]()}
	if table.Len() == 0 {
		return res, nil
	}

	members, err := loadMembers(r, table)
	if err != nil {
		return res, err
	}

	target := (*T)(inst)
	key := instanceKeyOf(r, target)

	for _, m := range members {
		mr := MemberResult{Member: m.Name, Path: m.Path(), Kind: m.Kind}

		node, cached, err := resolve[T, N](r, inst, target, key, m.Path())
		mr.Cached = cached
		if err != nil {
			mr.Outcome = Failed
			mr.Err = &ResolveError{Type: res.Type, Member: m.Name, Path: m.Path(), Err: err}
			res.Members = append(res.Members, mr)
			return res, mr.Err
		}

		if !m.Writable() {
			mr.Outcome = SkippedNoSetter
			res.Members = append(res.Members, mr)
			r.skipped()
			r.reporter.Report(Diagnostic{
				Component: Component,
				Member:    m.Name,
				Type:      res.Type,
				Path:      m.Path(),
			})
			continue
		}

		if err := m.write(target, node); err != nil {
			mr.Outcome = Failed
			mr.Err = &AssignError{Type: res.Type, Member: m.Name, Path: m.Path(), Err: err}
			res.Members = append(res.Members, mr)
			r.failed()
			return res, mr.Err
		}

		mr.Outcome = Resolved
		res.Members = append(res.Members, mr)
	}
	return res, nil
}

// MustInitialize is Initialize that panics on error.
//
// Useful in ready hooks where a missing node is a scene authoring bug.
func MustInitialize[T any, N any, PT interface {
	*T
	Lookup[N]
}](r *Registry, inst PT, table *Table[T, N]) *Result {
	res, err := Initialize(r, inst, table)
	if err != nil {
		panic(err)
	}
	return res
}

// loadMembers returns T's compiled member list, compiling and caching it on first use.
func loadMembers[T any, N any](r *Registry, table *Table[T, N]) ([]Member[T, N], error) {
	k := typeKey{host: reflect.TypeFor[T](), node: reflect.TypeFor[N]()}

	r.mu.Lock()
	cached, ok := r.members[k]
	r.mu.Unlock()
	if ok {
		return cached.([]Member[T, N]), nil
	}

	members, err := table.Members()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.members[k] = members
	r.mu.Unlock()
	return members, nil
}

// resolve returns the node for (inst, path), calling the host only on a cache miss.
// The registry lock is not held while the host runs.
func resolve[T any, N any](r *Registry, host Lookup[N], target *T, key any, path string) (N, bool, error) {
	nk := nodeKey{inst: key, path: path}

	r.mu.Lock()
	v, ok := r.nodes.get(nk)
	if ok {
		r.stats.Hits++
	} else {
		r.stats.Misses++
	}
	r.mu.Unlock()

	if ok {
		node, _ := v.(N)
		return node, true, nil
	}

	node, err := lookup(host, path)
	if err != nil {
		r.failed()
		var zero N
		return zero, false, err
	}

	r.mu.Lock()
	r.stats.Resolutions++
	r.nodes.put(nk, node)
	track(r, target, key)
	r.mu.Unlock()
	return node, false, nil
}

// lookup calls host.GetNode, converting a panic into an error.
func lookup[N any](host Lookup[N], path string) (node N, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero N
			node = zero
			err = fmt.Errorf("%w: %v", ErrLookupPanic, rec)
		}
	}()
	return host.GetNode(path)
}

func (r *Registry) skipped() {
	r.mu.Lock()
	r.stats.Skipped++
	r.mu.Unlock()
}

func (r *Registry) failed() {
	r.mu.Lock()
	r.stats.Failures++
	r.mu.Unlock()
}
