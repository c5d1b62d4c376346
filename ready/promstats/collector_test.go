package promstats_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/onready/ready"
	"github.com/sghaida/onready/ready/promstats"
)

type fixedStats ready.Stats

func (f fixedStats) Stats() ready.Stats { return ready.Stats(f) }

func TestCollector_ExportsSnapshot(t *testing.T) {
	t.Parallel()

	c := promstats.NewCollector("game", fixedStats{
		Types:       2,
		Nodes:       5,
		Hits:        7,
		Misses:      5,
		Resolutions: 4,
		Skipped:     1,
		Failures:    1,
	})

	want := `
# HELP game_onready_cached_nodes Resolved (instance, path) entries in the node cache.
# TYPE game_onready_cached_nodes gauge
game_onready_cached_nodes 5
# HELP game_onready_cached_types Host types in the member cache.
# TYPE game_onready_cached_types gauge
game_onready_cached_types 2
# HELP game_onready_node_cache_hits_total Node lookups served from the cache.
# TYPE game_onready_node_cache_hits_total counter
game_onready_node_cache_hits_total 7
# HELP game_onready_failures_total Initialize calls aborted by a lookup or assignment failure.
# TYPE game_onready_failures_total counter
game_onready_failures_total 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(want),
		"game_onready_cached_nodes",
		"game_onready_cached_types",
		"game_onready_node_cache_hits_total",
		"game_onready_failures_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 7, testutil.CollectAndCount(c))
}

func TestCollector_ReadsLiveRegistry(t *testing.T) {
	t.Parallel()

	reg := ready.New(ready.WithReporter(ready.Discard))
	c := promstats.NewCollector("", reg)

	pr := prometheus.NewPedanticRegistry()
	require.NoError(t, pr.Register(c))

	families, err := pr.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 7)
	for _, f := range families {
		assert.True(t, strings.HasPrefix(f.GetName(), "onready_"), f.GetName())
	}
}
