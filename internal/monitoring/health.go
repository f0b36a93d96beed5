package monitoring

import (
	"context"
	"sync"
	"time"
)

// ComponentChecker probes one dependency (database, cache, broker).
type ComponentChecker func(ctx context.Context) error

type ComponentHealth struct {
	Status      string        `json:"status"` // "healthy" or "unhealthy"
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}

type HealthStatus struct {
	Status     string                      `json:"status"` // "healthy" or "degraded"
	Timestamp  time.Time                   `json:"timestamp"`
	Uptime     string                      `json:"uptime"`
	Components map[string]*ComponentHealth `json:"components"`
}

// HealthChecker runs registered component probes on demand for the /health
// endpoint.
type HealthChecker struct {
	checkers  map[string]ComponentChecker
	startTime time.Time
	mu        sync.RWMutex
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checkers:  make(map[string]ComponentChecker),
		startTime: time.Now(),
	}
}

func (h *HealthChecker) RegisterCheck(name string, checker ComponentChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// CheckHealth probes every component with a short per-check timeout. Any
// failing component degrades the overall status.
func (h *HealthChecker) CheckHealth(ctx context.Context) *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Components: make(map[string]*ComponentHealth, len(h.checkers)),
	}

	for name, check := range h.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		start := time.Now()
		err := check(checkCtx)
		cancel()

		component := &ComponentHealth{
			Status:      "healthy",
			LastChecked: time.Now(),
			Duration:    time.Since(start),
		}
		if err != nil {
			component.Status = "unhealthy"
			component.Error = err.Error()
			status.Status = "degraded"
		}
		status.Components[name] = component
	}

	return status
}
