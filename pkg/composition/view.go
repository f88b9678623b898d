package composition

import (
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/layout"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// Edge styles understood by the renderer.
const (
	StyleSolid  = "solid"
	StyleDashed = "dashed"
)

// ViewNode is a node as the renderer consumes it.
type ViewNode struct {
	ID         uint64  `json:"id"`
	Label      string  `json:"label"`
	TopologyID int     `json:"topologyId"`
	Flavor     string  `json:"flavor"`
	Internet   bool    `json:"internet"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// ViewEdge is an edge as the renderer consumes it.
type ViewEdge struct {
	ID    uint64 `json:"id"`
	From  uint64 `json:"from"`
	To    uint64 `json:"to"`
	Style string `json:"style"`
}

// View is the ordered node and edge lists handed to a renderer.
type View struct {
	Nodes []ViewNode `json:"nodes"`
	Edges []ViewEdge `json:"edges"`
}

// View projects the composition for rendering, seeding coordinates with cfg.
// Nodes are listed topology by topology in creation order.
func (c *Composition) View(cfg layout.Config) View {
	positions := layout.Seed(c.Topologies, cfg)

	v := View{
		Nodes: make([]ViewNode, 0, len(c.Nodes)),
		Edges: make([]ViewEdge, 0, len(c.Edges)),
	}

	for _, t := range c.Topologies {
		for _, n := range c.TopologyNodes(t) {
			pos := positions[n.ID]
			v.Nodes = append(v.Nodes, ViewNode{
				ID:         n.ID,
				Label:      n.DisplayName,
				TopologyID: n.TopologyID,
				Flavor:     n.Flavor.String(),
				Internet:   n.InternetAccess,
				X:          pos.X,
				Y:          pos.Y,
			})
		}
	}

	for _, e := range c.OrderedEdges() {
		style := StyleSolid
		if e.Kind == topology.InterTopology {
			style = StyleDashed
		}
		v.Edges = append(v.Edges, ViewEdge{ID: e.ID, From: e.From, To: e.To, Style: style})
	}

	return v
}
