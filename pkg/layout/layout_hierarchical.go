package layout

import "math/bits"

// HierarchicalLayout arranges a heap-ordered binary tree level by level.
type HierarchicalLayout struct {
	config Config
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config Config) *HierarchicalLayout {
	return &HierarchicalLayout{config: config}
}

// ComputeLayout puts node i on level floor(log2(i+1)), centred on origin.X.
func (hl *HierarchicalLayout) ComputeLayout(origin Position, nodeIDs []uint64) map[uint64]Position {
	positions := make(map[uint64]Position, len(nodeIDs))

	for i, nodeID := range nodeIDs {
		level := bits.Len(uint(i+1)) - 1
		nodesInLevel := 1 << level
		posInLevel := (i + 1) - nodesInLevel

		positions[nodeID] = Position{
			X: origin.X + (float64(posInLevel)-float64(nodesInLevel)/2+0.5)*hl.config.SiblingSpacing,
			Y: origin.Y + float64(level)*hl.config.LevelHeight,
		}
	}

	return positions
}
