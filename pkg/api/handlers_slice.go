package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/blueprint"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/validation"
)

func (s *Server) handleSliceRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	req, err := sess.Request(r.URL.Query().Get("name"))
	if err != nil {
		s.respondErr(w, r, "serialize slice", err)
		return
	}
	s.respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	var req validation.SubmitRequest
	if s.NewRequestDecoder(w, r).
		DecodeOptionalJSON(&req).
		Validate(func() error { return validation.ValidateSubmitRequest(&req) }).
		RespondError() {
		return
	}

	if s.submitter == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no provisioner configured")
		return
	}

	resp, err := sess.Submit(r.Context(), s.submitter, req.Name)
	if errors.Is(err, transport.ErrRejected) {
		// The provisioner's own message is the useful part for the user.
		var submitErr *transport.SubmitError
		message := err.Error()
		if errors.As(err, &submitErr) && submitErr.Message != "" {
			message = submitErr.Message
		}
		s.respondJSON(w, http.StatusBadGateway, SubmitResponse{Success: false, Error: message})
		return
	}
	if err != nil {
		s.respondErr(w, r, "submit slice", err)
		return
	}
	s.respondJSON(w, http.StatusOK, SubmitResponse{Success: resp.Success, Error: resp.Error})
}

func (s *Server) handleApplyBlueprint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return
		}
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	bp, err := blueprint.Load(bytes.NewReader(body))
	if err != nil {
		s.respondErr(w, r, "load blueprint", err)
		return
	}

	res, err := sess.ApplyBlueprint(bp)
	if err != nil {
		s.respondErr(w, r, "apply blueprint", err)
		return
	}

	out := BlueprintResponse{
		Topologies: make([]TopologyResponse, 0, len(res.Topologies)),
		Links:      res.Links,
		Duplicates: res.Duplicates,
		View:       sess.State(s.cfg.Layout).View,
	}
	for _, t := range res.Topologies {
		out.Topologies = append(out.Topologies, topologyToResponse(t))
	}
	s.respondJSON(w, http.StatusCreated, out)
}
