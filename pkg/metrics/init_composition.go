package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCompositionMetrics() {
	r.TopologiesAddedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_topologies_added_total",
			Help: "Topologies added to compositions, by kind",
		},
		[]string{"kind"},
	)

	r.TopologyRejectsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_topology_rejects_total",
			Help: "Rejected topology additions, by reason",
		},
		[]string{"reason"},
	)

	r.NodesGeneratedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "slicer_nodes_generated_total",
			Help: "VM nodes created by the topology generator",
		},
	)

	r.NodeUpdatesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_node_updates_total",
			Help: "VM edits, by outcome",
		},
		[]string{"outcome"},
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_connections_total",
			Help: "Cross-topology connect requests, by outcome (created, noop, rejected)",
		},
		[]string{"outcome"},
	)

	r.TopologyNodeCount = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slicer_topology_node_count",
			Help:    "Number of VMs per added topology",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"kind"},
	)
}

func (r *Registry) initSessionMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "slicer_sessions_active",
			Help: "Current number of live editing sessions",
		},
	)

	r.SessionsCreatedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "slicer_sessions_created_total",
			Help: "Editing sessions created",
		},
	)

	r.SessionsEvictedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "slicer_sessions_evicted_total",
			Help: "Sessions removed, by reason (idle, deleted)",
		},
		[]string{"reason"},
	)
}
