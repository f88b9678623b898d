package layout

import "math"

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config Config
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config Config) *CircularLayout {
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle around origin, starting at angle 0.
func (cl *CircularLayout) ComputeLayout(origin Position, nodeIDs []uint64) map[uint64]Position {
	positions := make(map[uint64]Position, len(nodeIDs))
	if len(nodeIDs) == 0 {
		return positions
	}

	angleStep := 2 * math.Pi / float64(len(nodeIDs))
	for i, nodeID := range nodeIDs {
		angle := float64(i) * angleStep
		positions[nodeID] = Position{
			X: origin.X + cl.config.RingRadius*math.Cos(angle),
			Y: origin.Y + cl.config.RingRadius*math.Sin(angle),
		}
	}

	return positions
}
