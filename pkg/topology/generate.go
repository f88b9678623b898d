package topology

import (
	"fmt"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/ids"
)

// Generated is the output of Generate: a topology plus the nodes and
// intra-topology edges that belong to it.
type Generated struct {
	Topology Topology
	Nodes    []Node
	Edges    []Edge
}

// DefaultNodeName is the label given to the i-th (0-based) node of a topology.
func DefaultNodeName(topologyName string, i int) string {
	return fmt.Sprintf("%s-VM%d", topologyName, i+1)
}

// Generate allocates nodeCount nodes and the edges of the requested kind.
// Arguments are checked before any id is allocated, so a failed call leaves
// the allocator untouched.
func Generate(alloc *ids.Allocator, name string, kind Kind, nodeCount int, topologyIndex int) (*Generated, error) {
	gen, ok := GeneratorFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopologyKind, string(kind))
	}
	if nodeCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNodeCount, nodeCount)
	}

	out := &Generated{
		Topology: Topology{
			ID:      topologyIndex,
			Name:    name,
			Kind:    kind,
			NodeIDs: make([]uint64, 0, nodeCount),
		},
		Nodes: make([]Node, 0, nodeCount),
	}

	for i := 0; i < nodeCount; i++ {
		id := alloc.NextNodeID()
		out.Nodes = append(out.Nodes, Node{
			ID:          id,
			DisplayName: DefaultNodeName(name, i),
			TopologyID:  topologyIndex,
			Flavor:      DefaultFlavor,
		})
		out.Topology.NodeIDs = append(out.Topology.NodeIDs, id)
	}

	local := gen(nodeCount)
	out.Edges = make([]Edge, 0, len(local))
	for _, le := range local {
		out.Edges = append(out.Edges, Edge{
			ID:   alloc.NextEdgeID(),
			From: out.Topology.NodeIDs[le.From],
			To:   out.Topology.NodeIDs[le.To],
			Kind: IntraTopology,
		})
	}

	return out, nil
}
