// Package session keeps the live editing sessions of the slice server.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrLimitExceeded = errors.New("session limit reached")
)

// Eviction reasons reported to metrics.
const (
	reasonIdle    = "idle"
	reasonDeleted = "deleted"
)

// Config bounds the session table.
type Config struct {
	Max     int
	IdleTTL time.Duration
}

// Manager owns all sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      Config
	now      func() time.Time
	newID    func() string

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(m *Manager) { m.metrics = r }
}

// NewManager creates an empty session table.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = metrics.NewRegistry()
	}
	m.logger = m.logger.With(logging.Component("session"))
	return m
}

// Create starts a new session. Idle sessions are swept first so they do
// not count against the limit.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictIdleLocked(now)

	if m.cfg.Max > 0 && len(m.sessions) >= m.cfg.Max {
		m.logger.Warn("session limit reached", logging.Count(len(m.sessions)))
		return nil, ErrLimitExceeded
	}

	s := newSession(m.newID(), now, m.logger, m.metrics)
	m.sessions[s.ID] = s
	m.metrics.SessionCreated()
	s.logger.Info("session created")
	return s, nil
}

// Get returns a live session and marks it used. A session idle past the
// TTL is removed and reported as not found.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := m.now()
	if m.expired(s, now) {
		m.removeLocked(s, reasonIdle)
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

// Delete discards a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	m.removeLocked(s, reasonDeleted)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stats returns the live session count and the configured maximum.
func (m *Manager) Stats() (active, max int) {
	return m.Len(), m.cfg.Max
}

// EvictIdle removes every session idle past the TTL and returns how many
// were removed.
func (m *Manager) EvictIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evictIdleLocked(m.now())
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(); n > 0 {
				m.logger.Info("evicted idle sessions", logging.Count(n))
			}
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.cfg.IdleTTL > 0 && now.Sub(s.LastAccess()) > m.cfg.IdleTTL
}

func (m *Manager) evictIdleLocked(now time.Time) int {
	evicted := 0
	for _, s := range m.sessions {
		if m.expired(s, now) {
			m.removeLocked(s, reasonIdle)
			evicted++
		}
	}
	return evicted
}

func (m *Manager) removeLocked(s *Session, reason string) {
	delete(m.sessions, s.ID)
	m.metrics.SessionRemoved(reason)
	s.logger.Info("session removed", logging.String("reason", reason))
}
