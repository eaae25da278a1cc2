// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Probe reports whether a dependency answers.
type Probe func(ctx context.Context) error

const probeTimeout = 2 * time.Second

// HealthController handles health check endpoints.
type HealthController struct {
	now      func() time.Time
	database Probe
	redis    Probe
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil redis probe reports Redis as disabled.
func NewHealthController(now func() time.Time, database, redis Probe) *HealthController {
	if now == nil {
		now = time.Now
	}
	return &HealthController{now: now, database: database, redis: redis}
}

// Check handles GET /health. Redis is optional, so only a database outage
// turns the answer into a 503.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  probeStatus(ctx, "database", h.database),
		Redis:     "disabled",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	if h.redis != nil {
		response.Redis = probeStatus(ctx, "redis", h.redis)
	}

	status := http.StatusOK
	if response.Database != "connected" {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

func probeStatus(ctx context.Context, name string, probe Probe) string {
	if probe == nil {
		return "disconnected"
	}
	if err := probe(ctx); err != nil {
		slog.Error("Health probe failed", "dependency", name, "error", err)
		return "disconnected"
	}
	return "connected"
}
