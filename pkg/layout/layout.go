package layout

import "github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"

// Origin returns where the topology with the given index is centred.
func Origin(topologyIndex int, cfg Config) Position {
	return Position{X: float64(topologyIndex) * cfg.TopologySpacing}
}

// Seed computes positions for every node of every topology. Topologies are
// placed side by side so they never overlap at rest.
func Seed(topologies []topology.Topology, cfg Config) map[uint64]Position {
	positions := make(map[uint64]Position)
	for _, t := range topologies {
		for id, pos := range ForKind(t.Kind, cfg).ComputeLayout(Origin(t.ID, cfg), t.NodeIDs) {
			positions[id] = pos
		}
	}
	return positions
}
