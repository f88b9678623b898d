package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/session"
)

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected.
// Returns the decoder for chaining. Check HasError() after calling.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(rd.r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		rd.fail(err)
	}
	return rd
}

// DecodeOptionalJSON is DecodeJSON for endpoints whose body may be empty.
func (rd *requestDecoder) DecodeOptionalJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	dec := json.NewDecoder(rd.r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		rd.fail(err)
	}
	return rd
}

func (rd *requestDecoder) fail(err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		rd.err = fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		rd.statusCode = http.StatusRequestEntityTooLarge
		return
	}
	rd.err = fmt.Errorf("invalid request body: %w", err)
	rd.statusCode = http.StatusBadRequest
}

// Validate runs check unless an earlier step failed.
func (rd *requestDecoder) Validate(check func() error) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := check(); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// HasError returns true if any error occurred during decoding/validation.
func (rd *requestDecoder) HasError() bool {
	return rd.err != nil
}

// RespondError sends the error response and returns true if there was an error.
// Returns false if no error occurred.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// sessionFromPath resolves the {id} path segment. On failure the error
// response has been sent and ok is false.
func (s *Server) sessionFromPath(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.respondErr(w, r, "get session", err)
		return nil, false
	}
	return sess, true
}

// uint64FromPath parses a numeric path segment. On failure a 400 has been
// sent and ok is false.
func (s *Server) uint64FromPath(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}
