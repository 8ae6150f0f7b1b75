// Package observability collects Prometheus metrics about path searches.
package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

// Collector holds the search metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	Searches       *prometheus.CounterVec
	ExpandedNodes  prometheus.Histogram
	PathLength     prometheus.Histogram
	SearchDuration prometheus.Histogram
}

// NewCollector creates a collector whose metrics are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	searches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of path searches by outcome",
		},
		[]string{"outcome"},
	)

	expandedNodes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expanded_nodes",
			Help:      "Number of nodes expanded per search",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		},
	)

	pathLength := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Number of positions in found paths",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	searchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Path search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	registry.MustRegister(searches, expandedNodes, pathLength, searchDuration)

	return &Collector{
		registry:       registry,
		Searches:       searches,
		ExpandedNodes:  expandedNodes,
		PathLength:     pathLength,
		SearchDuration: searchDuration,
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSearch records one finished search.
// pathLength is only recorded for the found outcome.
func (c *Collector) ObserveSearch(outcome string, expandedNodes int, pathLength int, duration time.Duration) {
	c.Searches.WithLabelValues(outcome).Inc()
	c.SearchDuration.Observe(duration.Seconds())
	if outcome == OutcomeError {
		return
	}
	c.ExpandedNodes.Observe(float64(expandedNodes))
	if outcome == OutcomeFound {
		c.PathLength.Observe(float64(pathLength))
	}
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metric %s: %w", family.GetName(), err)
		}
	}
	return nil
}
