// Package promstats exports ready.Registry cache statistics to Prometheus.
//
//	reg := ready.New()
//	prometheus.MustRegister(promstats.NewCollector("game", reg))
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sghaida/onready/ready"
)

// StatsSource is satisfied by *ready.Registry.
type StatsSource interface {
	Stats() ready.Stats
}

// Collector reads a fresh Stats snapshot on every scrape.
type Collector struct {
	src StatsSource

	types       *prometheus.Desc
	nodes       *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	resolutions *prometheus.Desc
	skipped     *prometheus.Desc
	failures    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector with metric names under namespace_onready_*.
func NewCollector(namespace string, src StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "onready", name), help, nil, nil)
	}
	return &Collector{
		src:         src,
		types:       desc("cached_types", "Host types in the member cache."),
		nodes:       desc("cached_nodes", "Resolved (instance, path) entries in the node cache."),
		hits:        desc("node_cache_hits_total", "Node lookups served from the cache."),
		misses:      desc("node_cache_misses_total", "Node lookups that went to the host tree."),
		resolutions: desc("resolutions_total", "Successful host tree lookups."),
		skipped:     desc("skipped_members_total", "Marked properties left unset for lack of a setter."),
		failures:    desc("failures_total", "Initialize calls aborted by a lookup or assignment failure."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.types
	ch <- c.nodes
	ch <- c.hits
	ch <- c.misses
	ch <- c.resolutions
	ch <- c.skipped
	ch <- c.failures
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.types, prometheus.GaugeValue, float64(s.Types))
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(s.Nodes))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.resolutions, prometheus.CounterValue, float64(s.Resolutions))
	ch <- prometheus.MustNewConstMetric(c.skipped, prometheus.CounterValue, float64(s.Skipped))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
}
