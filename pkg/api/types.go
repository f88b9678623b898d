package api

import (
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	ID string `json:"id"`
}

// TopologyResponse describes a generated topology.
type TopologyResponse struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	NodeIDs []uint64 `json:"nodeIds"`
}

// NodeResponse describes one VM.
type NodeResponse struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	TopologyID int    `json:"topologyId"`
	Flavor     string `json:"flavor"`
	Internet   bool   `json:"internet"`
}

// ConnectionResponse describes an inter-topology edge. Created is false when
// the pair was already linked and nothing changed.
type ConnectionResponse struct {
	ID      uint64 `json:"id"`
	From    uint64 `json:"from"`
	To      uint64 `json:"to"`
	Created bool   `json:"created"`
}

// SubmitResponse mirrors the provisioner's reply.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BlueprintResponse summarizes a blueprint replay.
type BlueprintResponse struct {
	Topologies []TopologyResponse `json:"topologies"`
	Links      int                `json:"links"`
	Duplicates int                `json:"duplicates"`
	View       composition.View   `json:"view"`
}

func topologyToResponse(t topology.Topology) TopologyResponse {
	return TopologyResponse{
		ID:      t.ID,
		Name:    t.Name,
		Kind:    t.Kind.String(),
		NodeIDs: t.NodeIDs,
	}
}

func nodeToResponse(n topology.Node) NodeResponse {
	return NodeResponse{
		ID:         n.ID,
		Name:       n.DisplayName,
		TopologyID: n.TopologyID,
		Flavor:     n.Flavor.String(),
		Internet:   n.InternetAccess,
	}
}

func edgeToResponse(e topology.Edge, created bool) ConnectionResponse {
	return ConnectionResponse{
		ID:      e.ID,
		From:    e.From,
		To:      e.To,
		Created: created,
	}
}
