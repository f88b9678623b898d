package health

import (
	"context"
	"sync"
	"time"
)

// Status is the state a check or a whole scope reports.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) severity() int {
	switch s {
	case StatusUnhealthy:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}

// Worse returns whichever of s and other is more severe.
func (s Status) Worse(other Status) Status {
	if other.severity() > s.severity() {
		return other
	}
	return s
}

// Scope selects which set of checks a probe runs.
type Scope string

const (
	ScopeOverall   Scope = "overall"
	ScopeReadiness Scope = "readiness"
	ScopeLiveness  Scope = "liveness"
)

// Check is the outcome of one check. Name, CheckedAt and Latency are filled
// by the checker.
type Check struct {
	Name      string         `json:"name"`
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
	Latency   time.Duration  `json:"latency_ns"`
}

// CheckFunc performs one check. ctx carries the probe request's deadline.
type CheckFunc func(ctx context.Context) Check

// HealthChecker holds the registered checks per scope.
type HealthChecker struct {
	mu      sync.RWMutex
	scopes  map[Scope]map[string]CheckFunc
	started time.Time
}

// Response is the body of every health endpoint. Failing lists, sorted,
// the checks that were not healthy.
type Response struct {
	Scope     Scope            `json:"scope"`
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Failing   []string         `json:"failing,omitempty"`
	Uptime    float64          `json:"uptime_seconds"`
}
