package layout

import "math"

// GridLayout arranges nodes row by row on a square-ish grid. Used for meshes,
// where no node is structurally special.
type GridLayout struct {
	config Config
}

// NewGridLayout creates a new grid layout
func NewGridLayout(config Config) *GridLayout {
	return &GridLayout{config: config}
}

// ComputeLayout fills ceil(sqrt(n)) columns, centred on origin.
func (gl *GridLayout) ComputeLayout(origin Position, nodeIDs []uint64) map[uint64]Position {
	positions := make(map[uint64]Position, len(nodeIDs))
	n := len(nodeIDs)
	if n == 0 {
		return positions
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rowOffset := float64(n/cols) / 2
	colOffset := float64(cols-1) / 2

	for i, nodeID := range nodeIDs {
		row := i / cols
		col := i % cols
		positions[nodeID] = Position{
			X: origin.X + (float64(col)-colOffset)*gl.config.GridPitch,
			Y: origin.Y + (float64(row)-rowOffset)*gl.config.GridPitch,
		}
	}

	return positions
}
