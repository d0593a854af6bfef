package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/stallcraft/backend/api/responses"
	"github.com/stallcraft/backend/pkg/logger"
)

const readyCheckTimeout = 5 * time.Second

// Pinger is anything whose connectivity the readiness probe verifies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "alive", map[string]string{"status": "ok"})
	}
}

// Ready reports readiness by pinging each named dependency.
func Ready(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = err.Error()
				healthy = false
				if logg != nil {
					logg.Error(logg.WithFields(ctx, map[string]any{"dependency": name}), "health.check.failed", err)
				}
				continue
			}
			checks[name] = "ok"
		}

		status := http.StatusOK
		message := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			message = "not ready"
		}
		responses.WriteSuccessStatus(w, status, message, checks)
	}
}
