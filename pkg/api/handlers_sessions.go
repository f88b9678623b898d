package api

import (
	"net/http"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.respondErr(w, r, "create session", err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	s.respondJSON(w, http.StatusCreated, SessionResponse{ID: sess.ID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, sess.State(s.cfg.Layout))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.respondErr(w, r, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
