package health

import (
	"context"
	"runtime"
	"time"
)

// SimpleCheck always reports healthy.
func SimpleCheck(name string) CheckFunc {
	return func(context.Context) Check {
		return Check{Name: name, Status: StatusHealthy}
	}
}

// SessionCapacityCheck reports how full the session table is. The server
// refuses new sessions once it is full, so that state is unhealthy for
// readiness purposes.
func SessionCapacityCheck(stats func() (active, max int)) CheckFunc {
	return func(context.Context) Check {
		active, max := stats()
		check := Check{
			Name: "sessions",
			Details: map[string]any{
				"active": active,
				"max":    max,
			},
		}

		switch {
		case max > 0 && active >= max:
			check.Status = StatusUnhealthy
			check.Message = "Session limit reached"
		case max > 0 && active*10 >= max*8:
			check.Status = StatusDegraded
			check.Message = "Session table above 80%"
		default:
			check.Status = StatusHealthy
			check.Message = "Accepting sessions"
		}
		return check
	}
}

// ProvisionerCheck pings the provisioning endpoint. An unreachable
// provisioner only degrades the server: composing still works.
func ProvisionerCheck(ping func(ctx context.Context) error, timeout time.Duration) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{Name: "provisioner"}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			check.Status = StatusDegraded
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Reachable"
		}
		return check
	}
}

// GoroutineCheck degrades when the goroutine count exceeds limit.
func GoroutineCheck(limit int) CheckFunc {
	return func(context.Context) Check {
		n := runtime.NumGoroutine()
		check := Check{
			Name:    "goroutines",
			Details: map[string]any{"count": n, "limit": limit},
			Status:  StatusHealthy,
		}
		if n > limit {
			check.Status = StatusDegraded
			check.Message = "Goroutine count above limit"
		}
		return check
	}
}
