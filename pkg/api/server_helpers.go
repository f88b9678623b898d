package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/api/middleware"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/blueprint"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/composition"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/session"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/topology"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}

// statusForError maps domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, composition.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrLimitExceeded):
		return http.StatusServiceUnavailable
	case composition.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, composition.ErrEmptyName),
		errors.Is(err, composition.ErrNoTopologies),
		errors.Is(err, transport.ErrInvalidRequest):
		return http.StatusUnprocessableEntity
	case errors.Is(err, composition.ErrInvalidInput),
		errors.Is(err, composition.ErrInvalidTopologyKind),
		errors.Is(err, topology.ErrInvalidFlavor),
		errors.Is(err, blueprint.ErrInvalidBlueprint):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, transport.ErrRejected), errors.Is(err, transport.ErrUnexpectedStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondErr writes err with the status it maps to. Server-side failures
// are logged in full and reported to the client as a generic message.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := statusForError(err)
	if status < http.StatusInternalServerError {
		s.respondError(w, status, err.Error())
		return
	}

	s.logger.Error(operation+" failed",
		logging.Operation(operation),
		logging.RequestID(middleware.GetRequestID(r)),
		logging.Error(err))

	message := operation + " failed"
	if status == http.StatusGatewayTimeout {
		message = "provisioner timed out"
	}
	s.respondError(w, status, message)
}
