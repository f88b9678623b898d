package layout

import "math"

// StarLayout puts the hub on the origin and spreads the leaves on a circle.
type StarLayout struct {
	config Config
}

// NewStarLayout creates a new star layout
func NewStarLayout(config Config) *StarLayout {
	return &StarLayout{config: config}
}

// ComputeLayout places nodeIDs[0] at the origin and the rest around it.
func (sl *StarLayout) ComputeLayout(origin Position, nodeIDs []uint64) map[uint64]Position {
	positions := make(map[uint64]Position, len(nodeIDs))
	if len(nodeIDs) == 0 {
		return positions
	}

	positions[nodeIDs[0]] = origin
	leaves := len(nodeIDs) - 1
	if leaves == 0 {
		return positions
	}

	angleStep := 2 * math.Pi / float64(leaves)
	for i, nodeID := range nodeIDs[1:] {
		angle := float64(i) * angleStep
		positions[nodeID] = Position{
			X: origin.X + sl.config.StarRadius*math.Cos(angle),
			Y: origin.Y + sl.config.StarRadius*math.Sin(angle),
		}
	}

	return positions
}
