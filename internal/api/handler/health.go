package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// BackendPinger reports whether the remote backend answers HTTP at all.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks the remote backend and, when configured, Redis before declaring
// the gateway ready.
type ReadinessHandler struct {
	backend BackendPinger
	redis   *redis.Client // nil when the file token store is in use
}

func NewReadinessHandler(backend BackendPinger, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{backend: backend, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resp := readinessResponse{
		Status:       "ready",
		Dependencies: make(map[string]dependencyStatus),
	}

	if err := h.backend.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Dependencies["backend"] = dependencyStatus{Status: "down", Error: err.Error()}
	} else {
		resp.Dependencies["backend"] = dependencyStatus{Status: "up"}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Status = "degraded"
			resp.Dependencies["redis"] = dependencyStatus{Status: "down", Error: err.Error()}
		} else {
			resp.Dependencies["redis"] = dependencyStatus{Status: "up"}
		}
	}

	code := http.StatusOK
	if resp.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
