// Package health reports liveness and readiness of the slice server.
package health

import (
	"context"
	"sort"
	"time"
)

// NewHealthChecker creates a checker with no checks registered.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		scopes: map[Scope]map[string]CheckFunc{
			ScopeOverall:   {},
			ScopeReadiness: {},
			ScopeLiveness:  {},
		},
		started: time.Now(),
	}
}

// RegisterCheck registers a check reported on the overall endpoint.
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.register(ScopeOverall, name, check)
}

// RegisterReadinessCheck registers a readiness check
func (hc *HealthChecker) RegisterReadinessCheck(name string, check CheckFunc) {
	hc.register(ScopeReadiness, name, check)
}

// RegisterLivenessCheck registers a liveness check
func (hc *HealthChecker) RegisterLivenessCheck(name string, check CheckFunc) {
	hc.register(ScopeLiveness, name, check)
}

func (hc *HealthChecker) register(scope Scope, name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.scopes[scope][name] = check
}

// Check performs all health checks
func (hc *HealthChecker) Check(ctx context.Context) Response {
	return hc.run(ctx, ScopeOverall)
}

// CheckReadiness performs readiness checks
func (hc *HealthChecker) CheckReadiness(ctx context.Context) Response {
	return hc.run(ctx, ScopeReadiness)
}

// CheckLiveness performs liveness checks
func (hc *HealthChecker) CheckLiveness(ctx context.Context) Response {
	return hc.run(ctx, ScopeLiveness)
}

func (hc *HealthChecker) run(ctx context.Context, scope Scope) Response {
	hc.mu.RLock()
	snapshot := make(map[string]CheckFunc, len(hc.scopes[scope]))
	for name, fn := range hc.scopes[scope] {
		snapshot[name] = fn
	}
	hc.mu.RUnlock()

	response := Response{
		Scope:     scope,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(snapshot)),
		Uptime:    time.Since(hc.started).Seconds(),
	}

	for name, fn := range snapshot {
		start := time.Now()
		check := fn(ctx)
		check.Latency = time.Since(start)
		check.CheckedAt = start
		if check.Name == "" {
			check.Name = name
		}
		response.Checks[name] = check
		response.Status = response.Status.Worse(check.Status)
		if check.Status != StatusHealthy {
			response.Failing = append(response.Failing, name)
		}
	}
	sort.Strings(response.Failing)

	return response
}
