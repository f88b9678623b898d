// Package composition holds a slice under construction: up to three
// topologies, their nodes and edges, and the links drawn between topologies.
package composition

import (
	"fmt"
	"slices"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// MaxTopologies is the number of topologies a slice may contain.
const MaxTopologies = 3

// Composition is a read-only copy of a Store's state.
type Composition struct {
	SliceName  string
	Topologies []topology.Topology
	Nodes      map[uint64]topology.Node
	Edges      map[uint64]topology.Edge
}

// DefaultTopologyName is the name proposed for the i-th (0-based) topology.
func DefaultTopologyName(i int) string {
	return fmt.Sprintf("Topology %d", i+1)
}

// TopologyNodes returns the nodes of a topology in creation order.
func (c *Composition) TopologyNodes(t topology.Topology) []topology.Node {
	nodes := make([]topology.Node, 0, len(t.NodeIDs))
	for _, id := range t.NodeIDs {
		if n, ok := c.Nodes[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// OrderedEdges returns every edge in creation order. Edge ids are allocated
// monotonically, so id order is creation order.
func (c *Composition) OrderedEdges() []topology.Edge {
	edges := make([]topology.Edge, 0, len(c.Edges))
	for _, e := range c.Edges {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b topology.Edge) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return edges
}

// InterTopologyEdges returns the links between topologies in creation order.
func (c *Composition) InterTopologyEdges() []topology.Edge {
	var out []topology.Edge
	for _, e := range c.OrderedEdges() {
		if e.Kind == topology.InterTopology {
			out = append(out, e)
		}
	}
	return out
}
