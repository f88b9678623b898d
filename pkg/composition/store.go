package composition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/ids"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// Store is the mutable root of a composition session. It owns its id
// allocator; nothing it hands out aliases internal state. A Store assumes a
// single writer and does no locking of its own.
type Store struct {
	alloc      *ids.Allocator
	sliceName  string
	topologies []topology.Topology
	nodes      map[uint64]topology.Node
	edges      map[uint64]topology.Edge
	pairs      map[topology.PairKey]uint64 // unordered endpoints -> edge id
}

// NodeUpdate carries a partial VM edit; nil fields are left unchanged.
type NodeUpdate struct {
	DisplayName    *string
	Flavor         *topology.Flavor
	InternetAccess *bool
}

// NewStore creates an empty composition with a fresh allocator.
func NewStore() *Store {
	return &Store{
		alloc: ids.NewAllocator(),
		nodes: make(map[uint64]topology.Node),
		edges: make(map[uint64]topology.Edge),
		pairs: make(map[topology.PairKey]uint64),
	}
}

// AddTopology generates a topology of the given kind and size and appends it.
func (s *Store) AddTopology(name string, kind topology.Kind, nodeCount int) (topology.Topology, error) {
	const op = "AddTopology"

	if len(s.topologies) >= MaxTopologies {
		return topology.Topology{}, NewError(op).Topology().
			Cause(ErrTopologyLimitExceeded).
			Detail(fmt.Errorf("maximum is %d", MaxTopologies)).Err()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return topology.Topology{}, InvalidInputError(op, "topology", "name", errors.New("name is empty"))
	}
	if nodeCount < 1 {
		return topology.Topology{}, InvalidInputError(op, "topology", "nodeCount", topology.ErrInvalidNodeCount)
	}
	if !kind.Valid() {
		return topology.Topology{}, InvalidInputError(op, "topology", "kind",
			fmt.Errorf("%w: %q", topology.ErrInvalidTopologyKind, string(kind)))
	}

	gen, err := topology.Generate(s.alloc, name, kind, nodeCount, len(s.topologies))
	if err != nil {
		return topology.Topology{}, InvalidInputError(op, "topology", "", err)
	}

	for _, n := range gen.Nodes {
		s.nodes[n.ID] = n
	}
	for _, e := range gen.Edges {
		s.edges[e.ID] = e
		s.pairs[e.Key()] = e.ID
	}
	s.topologies = append(s.topologies, gen.Topology)

	return gen.Topology.Clone(), nil
}

// UpdateNode applies a partial edit to one node and returns the result.
func (s *Store) UpdateNode(nodeID uint64, upd NodeUpdate) (topology.Node, error) {
	const op = "UpdateNode"

	node, ok := s.nodes[nodeID]
	if !ok {
		return topology.Node{}, NodeNotFoundError(op, nodeID)
	}

	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if name == "" {
			return topology.Node{}, NewError(op).Node(nodeID).Field("displayName").
				Cause(ErrInvalidInput).Detail(errors.New("name is empty")).Err()
		}
		node.DisplayName = name
	}
	if upd.Flavor != nil {
		if !upd.Flavor.Valid() {
			return topology.Node{}, NewError(op).Node(nodeID).Field("flavor").
				Cause(ErrInvalidInput).Detail(fmt.Errorf("%w: %q", topology.ErrInvalidFlavor, string(*upd.Flavor))).Err()
		}
		node.Flavor = *upd.Flavor
	}
	if upd.InternetAccess != nil {
		node.InternetAccess = *upd.InternetAccess
	}

	s.nodes[nodeID] = node
	return node, nil
}

// SetSliceName records the name the slice will be submitted under.
func (s *Store) SetSliceName(name string) {
	s.sliceName = strings.TrimSpace(name)
}

// Node returns a copy of a node.
func (s *Store) Node(nodeID uint64) (topology.Node, bool) {
	n, ok := s.nodes[nodeID]
	return n, ok
}

// TopologyCount returns how many topologies have been added.
func (s *Store) TopologyCount() int {
	return len(s.topologies)
}

// CanAddTopology reports whether another topology fits in the slice.
func (s *Store) CanAddTopology() bool {
	return len(s.topologies) < MaxTopologies
}

// CanSubmit reports whether the slice has anything to provision.
func (s *Store) CanSubmit() bool {
	return len(s.topologies) > 0
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *Composition {
	c := &Composition{
		SliceName:  s.sliceName,
		Topologies: make([]topology.Topology, len(s.topologies)),
		Nodes:      make(map[uint64]topology.Node, len(s.nodes)),
		Edges:      make(map[uint64]topology.Edge, len(s.edges)),
	}
	for i, t := range s.topologies {
		c.Topologies[i] = t.Clone()
	}
	for id, n := range s.nodes {
		c.Nodes[id] = n
	}
	for id, e := range s.edges {
		c.Edges[id] = e
	}
	return c
}
