// Package topology generates the node and edge sets of the four supported
// topology kinds.
package topology

import (
	"fmt"
	"strings"
)

// Kind is the connectivity pattern of a topology.
type Kind string

const (
	Ring Kind = "ring"
	Star Kind = "star"
	Mesh Kind = "mesh"
	Tree Kind = "tree"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{Ring, Star, Mesh, Tree}

// kindAliases maps the names accepted by ParseKind to their kind. The
// Spanish names are what the legacy web editor sends.
var kindAliases = map[string]Kind{
	"ring":     Ring,
	"anillo":   Ring,
	"star":     Star,
	"estrella": Star,
	"mesh":     Mesh,
	"malla":    Mesh,
	"tree":     Tree,
	"arbol":    Tree,
	"árbol":    Tree,
}

// ParseKind converts a user-supplied kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTopologyKind, s)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := GeneratorFor(k)
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// Flavor is a VM size class.
type Flavor string

const (
	F1 Flavor = "f1"
	F2 Flavor = "f2"
	F3 Flavor = "f3"
	F4 Flavor = "f4"
	F5 Flavor = "f5"
	F6 Flavor = "f6"
)

// DefaultFlavor is assigned to every generated node.
const DefaultFlavor = F1

// Flavors lists every flavor from smallest to largest.
var Flavors = []Flavor{F1, F2, F3, F4, F5, F6}

// ParseFlavor converts a flavor name such as "f3" or "F3" into a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	f := Flavor(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFlavor, s)
	}
	return f, nil
}

// Valid reports whether f is one of f1..f6.
func (f Flavor) Valid() bool {
	for _, known := range Flavors {
		if f == known {
			return true
		}
	}
	return false
}

func (f Flavor) String() string {
	return string(f)
}

// EdgeKind tells intra-topology edges from the links drawn between topologies.
type EdgeKind uint8

const (
	IntraTopology EdgeKind = iota
	InterTopology
)

func (k EdgeKind) String() string {
	switch k {
	case IntraTopology:
		return "intra-topology"
	case InterTopology:
		return "inter-topology"
	default:
		return "unknown"
	}
}

// Node is a virtual machine inside a topology.
type Node struct {
	ID             uint64
	DisplayName    string
	TopologyID     int
	Flavor         Flavor
	InternetAccess bool
}

// Edge is an undirected link between two nodes. From and To keep the order
// the edge was created with; identity is the unordered pair.
type Edge struct {
	ID   uint64
	From uint64
	To   uint64
	Kind EdgeKind
}

// Key returns the unordered endpoint pair of the edge.
func (e Edge) Key() PairKey {
	return NewPairKey(e.From, e.To)
}

// PairKey is an unordered pair of node ids, normalized so Lo <= Hi.
type PairKey struct {
	Lo uint64
	Hi uint64
}

// NewPairKey normalizes the pair {a, b}.
func NewPairKey(a, b uint64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Topology is a named, typed group of nodes. ID is the topology's index in
// its composition.
type Topology struct {
	ID      int
	Name    string
	Kind    Kind
	NodeIDs []uint64
}

// Clone creates a deep copy of a topology
func (t Topology) Clone() Topology {
	clone := t
	clone.NodeIDs = make([]uint64, len(t.NodeIDs))
	copy(clone.NodeIDs, t.NodeIDs)
	return clone
}
