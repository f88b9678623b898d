package topology

// LocalEdge is an edge between two 0-based node positions of one topology.
type LocalEdge struct {
	From int
	To   int
}

// GeneratorFunc returns the edges of an n-node topology as local index
// pairs. Implementations are pure and never emit self-loops or duplicates.
type GeneratorFunc func(n int) []LocalEdge

var generators = map[Kind]GeneratorFunc{
	Ring: RingEdges,
	Star: StarEdges,
	Mesh: MeshEdges,
	Tree: TreeEdges,
}

// GeneratorFor returns the generator registered for k.
func GeneratorFor(k Kind) (GeneratorFunc, bool) {
	g, ok := generators[k]
	return g, ok
}

// RingEdges connects each node to its successor and closes the cycle.
// One node yields no edge and two nodes yield a single edge.
func RingEdges(n int) []LocalEdge {
	switch {
	case n <= 1:
		return nil
	case n == 2:
		return []LocalEdge{{From: 0, To: 1}}
	}

	edges := make([]LocalEdge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, LocalEdge{From: i, To: (i + 1) % n})
	}
	return edges
}

// StarEdges connects node 0 (the hub) to every other node.
func StarEdges(n int) []LocalEdge {
	if n <= 1 {
		return nil
	}

	edges := make([]LocalEdge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, LocalEdge{From: 0, To: i})
	}
	return edges
}

// MeshEdges connects every unordered pair (complete graph).
func MeshEdges(n int) []LocalEdge {
	if n <= 1 {
		return nil
	}

	edges := make([]LocalEdge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, LocalEdge{From: i, To: j})
		}
	}
	return edges
}

// TreeEdges builds a binary tree in heap order: node i hangs off (i-1)/2.
func TreeEdges(n int) []LocalEdge {
	if n <= 1 {
		return nil
	}

	edges := make([]LocalEdge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, LocalEdge{From: (i - 1) / 2, To: i})
	}
	return edges
}
