package ready_test

import (
	"testing"

	"github.com/sghaida/onready/ready"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

type benchNode struct{ name string }

type benchHost struct {
	nodes map[string]*benchNode

	a, b, c *benchNode
	title   *benchNode
}

func (h *benchHost) GetNode(path string) (*benchNode, error) {
	if n, ok := h.nodes[path]; ok {
		return n, nil
	}
	return nil, errNotFound
}

var benchMembers = ready.Declare[benchHost, *benchNode]().
	Field("a", "A", ready.Assign(func(h *benchHost, n *benchNode) { h.a = n })).
	Field("b", "B", ready.Assign(func(h *benchHost, n *benchNode) { h.b = n })).
	Field("c", "C", ready.Assign(func(h *benchHost, n *benchNode) { h.c = n })).
	Property("Title", "Title", nil)

var benchTree = map[string]*benchNode{
	"A":     {name: "A"},
	"B":     {name: "B"},
	"C":     {name: "C"},
	"Title": {name: "Title"},
}

func newBenchHost() *benchHost { return &benchHost{nodes: benchTree} }

/*
   Benchmarks
*/

// Every iteration is a new instance: all paths miss the node cache.
func BenchmarkInitialize_Cold(b *testing.B) {
	reg := ready.New(ready.WithReporter(ready.Discard))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ready.Initialize(reg, newBenchHost(), benchMembers)
	}
}

// Same instance every iteration: all paths hit the node cache.
func BenchmarkInitialize_Warm(b *testing.B) {
	reg := ready.New(ready.WithReporter(ready.Discard))
	h := newBenchHost()
	_, _ = ready.Initialize(reg, h, benchMembers)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ready.Initialize(reg, h, benchMembers)
	}
}

func BenchmarkInitialize_Warm_StrongKeys(b *testing.B) {
	reg := ready.New(ready.WithReporter(ready.Discard), ready.WithoutWeakKeys())
	h := newBenchHost()
	_, _ = ready.Initialize(reg, h, benchMembers)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ready.Initialize(reg, h, benchMembers)
	}
}

func BenchmarkInitialize_Warm_LRU(b *testing.B) {
	reg := ready.New(ready.WithReporter(ready.Discard), ready.WithNodeCacheSize(64))
	h := newBenchHost()
	_, _ = ready.Initialize(reg, h, benchMembers)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ready.Initialize(reg, h, benchMembers)
	}
}

// Cached nodes are dropped every iteration, so lookups always run but the
// member list stays compiled.
func BenchmarkInitialize_AfterRelease(b *testing.B) {
	reg := ready.New(ready.WithReporter(ready.Discard))
	h := newBenchHost()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ready.Initialize(reg, h, benchMembers)
		ready.Release(reg, h)
	}
}
