// Package serializer projects a composition into the provisioning wire format.
package serializer

import (
	"encoding/json"
	"strings"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
)

// ToRequest builds the provisioning request for a composition. The result
// depends only on the snapshot and the name: topologies and VMs keep
// insertion order, connections keep edge creation order.
func ToRequest(c *composition.Composition, sliceName string) (*SliceRequest, error) {
	const op = "ToRequest"

	sliceName = strings.TrimSpace(sliceName)
	if sliceName == "" {
		return nil, composition.NewError(op).Slice().Field("name").Cause(composition.ErrEmptyName).Err()
	}
	if c == nil || len(c.Topologies) == 0 {
		return nil, composition.NewError(op).Slice().Cause(composition.ErrNoTopologies).Err()
	}

	req := &SliceRequest{
		Name:        sliceName,
		Topologies:  make([]TopologyRequest, 0, len(c.Topologies)),
		Connections: make([]Connection, 0),
	}

	for _, t := range c.Topologies {
		nodes := c.TopologyNodes(t)
		tr := TopologyRequest{
			Name: t.Name,
			Kind: t.Kind.String(),
			VMs:  make([]VMRequest, 0, len(nodes)),
		}
		for _, n := range nodes {
			tr.VMs = append(tr.VMs, VMRequest{
				Name:     n.DisplayName,
				Flavor:   n.Flavor.String(),
				Internet: n.InternetAccess,
			})
		}
		req.Topologies = append(req.Topologies, tr)
	}

	for _, e := range c.InterTopologyEdges() {
		from, ok := c.Nodes[e.From]
		if !ok {
			return nil, composition.NodeNotFoundError(op, e.From)
		}
		to, ok := c.Nodes[e.To]
		if !ok {
			return nil, composition.NodeNotFoundError(op, e.To)
		}
		req.Connections = append(req.Connections, Connection{From: from.DisplayName, To: to.DisplayName})
	}

	return req, nil
}

// Marshal encodes a request as JSON.
func Marshal(req *SliceRequest) ([]byte, error) {
	return json.Marshal(req)
}

// VMCount returns the number of VMs across all topologies.
func (r *SliceRequest) VMCount() int {
	total := 0
	for _, t := range r.Topologies {
		total += len(t.VMs)
	}
	return total
}
