package api

import (
	"net/http"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/validation"
)

func (s *Server) handleAddTopology(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	var req validation.AddTopologyRequest
	if s.NewRequestDecoder(w, r).
		DecodeJSON(&req).
		Validate(func() error { return validation.ValidateAddTopologyRequest(&req) }).
		RespondError() {
		return
	}

	kind, err := topology.ParseKind(req.Kind)
	if err != nil {
		s.respondErr(w, r, "add topology", err)
		return
	}

	t, err := sess.AddTopology(req.Name, kind, req.VMs)
	if err != nil {
		s.respondErr(w, r, "add topology", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, topologyToResponse(t))
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}
	nodeID, ok := s.uint64FromPath(w, r, "nodeId")
	if !ok {
		return
	}

	var req validation.UpdateNodeRequest
	if s.NewRequestDecoder(w, r).
		DecodeJSON(&req).
		Validate(func() error { return validation.ValidateUpdateNodeRequest(&req) }).
		RespondError() {
		return
	}

	upd := composition.NodeUpdate{
		DisplayName:    req.Name,
		InternetAccess: req.Internet,
	}
	if req.Flavor != nil {
		f, err := topology.ParseFlavor(*req.Flavor)
		if err != nil {
			s.respondErr(w, r, "update node", err)
			return
		}
		upd.Flavor = &f
	}

	n, err := sess.UpdateNode(nodeID, upd)
	if err != nil {
		s.respondErr(w, r, "update node", err)
		return
	}
	s.respondJSON(w, http.StatusOK, nodeToResponse(n))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	var req validation.ConnectRequest
	if s.NewRequestDecoder(w, r).
		DecodeJSON(&req).
		Validate(func() error { return validation.ValidateConnectRequest(&req) }).
		RespondError() {
		return
	}

	e, created, err := sess.Connect(*req.From, *req.To)
	if err != nil {
		s.respondErr(w, r, "connect", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.respondJSON(w, status, edgeToResponse(e, created))
}
