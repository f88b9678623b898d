// Package layout computes seed coordinates for the nodes of a topology so a
// renderer has a sensible starting picture. It does not simulate physics.
package layout

import "github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config configures layout parameters
type Config struct {
	TopologySpacing float64 `yaml:"topology_spacing"` // Horizontal distance between topology origins
	RingRadius      float64 `yaml:"ring_radius"`      // Radius of the ring circle
	StarRadius      float64 `yaml:"star_radius"`      // Radius of the circle star leaves sit on
	SiblingSpacing  float64 `yaml:"sibling_spacing"`  // Horizontal distance between tree siblings
	LevelHeight     float64 `yaml:"level_height"`     // Vertical distance between tree levels
	GridPitch       float64 `yaml:"grid_pitch"`       // Cell size of the mesh grid
}

// DefaultConfig returns the geometry used by the slice editor.
func DefaultConfig() Config {
	return Config{
		TopologySpacing: 400,
		RingRadius:      120,
		StarRadius:      150,
		SiblingSpacing:  100,
		LevelHeight:     120,
		GridPitch:       100,
	}
}

// Layout places the nodes of one topology around an origin.
type Layout interface {
	ComputeLayout(origin Position, nodeIDs []uint64) map[uint64]Position
}

// ForKind returns the layout matching a topology kind.
func ForKind(kind topology.Kind, cfg Config) Layout {
	switch kind {
	case topology.Ring:
		return NewCircularLayout(cfg)
	case topology.Star:
		return NewStarLayout(cfg)
	case topology.Tree:
		return NewHierarchicalLayout(cfg)
	default:
		return NewGridLayout(cfg)
	}
}
