package composition

import (
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// Connect links two nodes of different topologies. If the pair is already
// linked the existing edge is returned with created=false and nothing changes.
func (s *Store) Connect(nodeA, nodeB uint64) (edge topology.Edge, created bool, err error) {
	const op = "Connect"

	a, ok := s.nodes[nodeA]
	if !ok {
		return topology.Edge{}, false, NodeNotFoundError(op, nodeA)
	}
	b, ok := s.nodes[nodeB]
	if !ok {
		return topology.Edge{}, false, NodeNotFoundError(op, nodeB)
	}
	if a.TopologyID == b.TopologyID {
		return topology.Edge{}, false, NewError(op).Node(nodeB).Cause(ErrSameTopology).Err()
	}

	key := topology.NewPairKey(nodeA, nodeB)
	if existing, ok := s.pairs[key]; ok {
		return s.edges[existing], false, nil
	}

	edge = topology.Edge{
		ID:   s.alloc.NextEdgeID(),
		From: nodeA,
		To:   nodeB,
		Kind: topology.InterTopology,
	}
	s.edges[edge.ID] = edge
	s.pairs[key] = edge.ID

	return edge, true, nil
}
