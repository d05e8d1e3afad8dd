package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ignite/message-relay/internal/pkg/httputil"
)

// HealthStatus is the overall health report.
type HealthStatus struct {
	Status string                    `json:"status"` // "healthy" or "unhealthy"
	Uptime string                    `json:"uptime"`
	Checks map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck reports the health of a single dependency.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "not_configured"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthChecker reports liveness and database reachability. The database is
// the relay's only dependency.
type HealthChecker struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthChecker creates a HealthChecker. db may be nil; the check then
// reports "not_configured".
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db, startTime: time.Now()}
}

// HandleHealth returns the health status of the relay and its database.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status: "healthy",
		Uptime: time.Since(hc.startTime).Round(time.Second).String(),
		Checks: map[string]ComponentCheck{},
	}

	status.Checks["database"] = hc.checkDatabase(r.Context())
	httpStatus := http.StatusOK
	if status.Checks["database"].Status == "down" {
		status.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	httputil.JSON(w, httpStatus, status)
}

func (hc *HealthChecker) checkDatabase(ctx context.Context) ComponentCheck {
	if hc.db == nil {
		return ComponentCheck{Status: "not_configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := hc.db.PingContext(ctx); err != nil {
		return ComponentCheck{Status: "down", Message: err.Error()}
	}
	return ComponentCheck{Status: "up", Latency: time.Since(start).String()}
}
