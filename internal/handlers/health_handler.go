package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"hindipath/internal/logger"
)

// Readiness tracks the initialization steps the server runs before it can
// take traffic
type Readiness struct {
	mu      sync.RWMutex
	steps   []string
	done    map[string]bool
	current string
}

// NewReadiness creates a tracker for the named steps
func NewReadiness(steps ...string) *Readiness {
	return &Readiness{
		steps:   steps,
		done:    make(map[string]bool, len(steps)),
		current: "Initializing...",
	}
}

// Start records the step currently running
func (rd *Readiness) Start(step string) {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	rd.current = step
}

// Complete marks a step as done
func (rd *Readiness) Complete(step string) {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	rd.done[step] = true
}

// Status reports whether every step is done, the current step and the
// percentage completed
func (rd *Readiness) Status() (bool, string, int) {
	rd.mu.RLock()
	defer rd.mu.RUnlock()

	completed := 0
	for _, s := range rd.steps {
		if rd.done[s] {
			completed++
		}
	}
	if len(rd.steps) == 0 {
		return true, rd.current, 100
	}
	return completed == len(rd.steps), rd.current, completed * 100 / len(rd.steps)
}

// Pinger checks that the store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers liveness probes
type HealthHandler struct {
	readiness *Readiness
	db        Pinger
	log       *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(readiness *Readiness, db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{readiness: readiness, db: db, log: log}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ready, current, progress := h.readiness.Status()
	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"ok":       false,
			"current":  current,
			"progress": progress,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		h.log.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"ok": false, "current": "database unreachable"})
		return
	}
	writeOK(w)
}
