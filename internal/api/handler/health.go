package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const probeTimeout = 2 * time.Second

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
// Checks that the upstream data API answers and, when the redis vault
// backend is configured, that redis answers a ping.
type ReadinessHandler struct {
	upstreamURL string
	redis       *redis.Client // nil unless the redis vault is in use
	http        *http.Client
}

func NewReadinessHandler(upstreamURL string, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{
		upstreamURL: upstreamURL,
		redis:       rdb,
		http:        &http.Client{Timeout: probeTimeout},
	}
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
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"upstream": h.checkUpstream(ctx),
	}
	if h.redis != nil {
		deps["redis"] = h.checkRedis(ctx)
	}

	status := "ok"
	code := http.StatusOK
	for _, d := range deps {
		if d.Status != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}
	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}

// checkUpstream treats any HTTP answer as reachable; only transport
// failures mark the dependency down.
func (h *ReadinessHandler) checkUpstream(ctx context.Context) dependencyStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.upstreamURL+"/health", nil)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	resp.Body.Close()
	return dependencyStatus{Status: "ok"}
}

func (h *ReadinessHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
