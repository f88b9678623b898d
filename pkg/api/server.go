// Package api serves the slice editor over HTTP: sessions, topology edits,
// serialization and submission, plus health and metrics.
package api

import (
	"net/http"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/api/middleware"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/config"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/health"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/session"
)

// Server represents the HTTP API server
type Server struct {
	cfg             config.Config
	sessions        *session.Manager
	submitter       session.Submitter
	healthChecker   *health.HealthChecker
	metricsRegistry *metrics.Registry
	corsConfig      *middleware.CORSConfig
	logger          logging.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Server) { s.metricsRegistry = r }
}

// WithHealthChecker replaces the default health checker.
func WithHealthChecker(hc *health.HealthChecker) Option {
	return func(s *Server) { s.healthChecker = hc }
}

// NewServer creates a new API server. Submissions are forwarded to submitter.
func NewServer(cfg config.Config, sessions *session.Manager, submitter session.Submitter, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		sessions:  sessions,
		submitter: submitter,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.metricsRegistry == nil {
		s.metricsRegistry = metrics.DefaultRegistry()
	}
	if s.healthChecker == nil {
		s.healthChecker = health.NewHealthChecker()
		s.healthChecker.RegisterLivenessCheck("api", health.SimpleCheck("api"))
		s.healthChecker.RegisterReadinessCheck("sessions", health.SessionCapacityCheck(sessions.Stats))
	}

	s.corsConfig = middleware.DefaultCORSConfig()
	s.corsConfig.AllowedOrigins = cfg.Server.CORSOrigins
	s.logger = s.logger.With(logging.Component("api"))
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	// Metrics reads the pattern the mux stores on the request, so it must
	// wrap the mux directly.
	var h http.Handler = mux
	h = middleware.Metrics(s.metricsRegistry)(h)
	h = middleware.BodySizeLimit(s.cfg.Server.MaxBodyBytes)(h)
	h = middleware.CORS(s.corsConfig)(h)
	h = middleware.Logging(s.logger)(h)
	h = middleware.PanicRecovery(s.logger)(h)
	h = middleware.RequestID()(h)
	return h
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health and metrics
	mux.Handle("GET /health", s.healthChecker.HTTPHandler())
	mux.Handle("GET /health/live", s.healthChecker.LivenessHandler())
	mux.Handle("GET /health/ready", s.healthChecker.ReadinessHandler())
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	// Sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	// Composition edits
	mux.HandleFunc("POST /sessions/{id}/topologies", s.handleAddTopology)
	mux.HandleFunc("PATCH /sessions/{id}/nodes/{nodeId}", s.handleUpdateNode)
	mux.HandleFunc("POST /sessions/{id}/connections", s.handleConnect)
	mux.HandleFunc("POST /sessions/{id}/blueprint", s.handleApplyBlueprint)

	// Serialization and submission
	mux.HandleFunc("GET /sessions/{id}/request", s.handleSliceRequest)
	mux.HandleFunc("POST /sessions/{id}/submit", s.handleSubmit)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metricsRegistry.UpdateSystemMetrics()
	s.metricsRegistry.Handler().ServeHTTP(w, r)
}
