package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rj-helpers/nbtpatch/patchset"
)

// runMetrics counts what a single invocation did. Nothing is served; the
// registry is written out for the node exporter textfile collector.
type runMetrics struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	additions prometheus.Counter
	removals  prometheus.Counter
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nbtpatch",
			Name:      "documents_total",
			Help:      "Item documents processed, by command.",
		}, []string{"command"}),
		additions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nbtpatch",
			Name:      "additions_total",
			Help:      "Patch additions applied or captured.",
		}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nbtpatch",
			Name:      "removals_total",
			Help:      "Patch removals applied.",
		}),
	}
	m.registry.MustRegister(m.documents, m.additions, m.removals)
	return m
}

func (m *runMetrics) observe(command string, ps *patchset.PatchSet) {
	m.documents.WithLabelValues(command).Inc()
	m.additions.Add(float64(len(ps.AdditionPaths())))
	m.removals.Add(float64(len(ps.RemovalPaths())))
}

// flush writes the metrics to path. An empty path disables it.
func (m *runMetrics) flush(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
