package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Yulian302/findit-gateway/logging"
	"github.com/gin-gonic/gin"
)

type ReadinessCheck interface {
	IsReady(ctx context.Context) error
	Name() string
}

type HealthHandler struct {
	checks  []ReadinessCheck
	timeout time.Duration
}

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewHealthHandler(checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Check runs every readiness check and returns the failing ones keyed by name.
func (h *HealthHandler) Check(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	failed := make(map[string]error)
	for _, c := range h.checks {
		if err := c.IsReady(ctx); err != nil {
			failed[c.Name()] = err
		}
	}
	return failed
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, Status{Status: "ok"})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	failed := h.Check(c.Request.Context())

	checks := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		checks[chk.Name()] = "ok"
	}
	for name, err := range failed {
		// backend error text stays in the logs
		logging.FromContext(c.Request.Context()).Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
		checks[name] = "unavailable"
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, Status{Status: "unavailable", Checks: checks})
		return
	}
	c.JSON(http.StatusOK, Status{Status: "ok", Checks: checks})
}

func RegisterHealthRoutes(h *HealthHandler, r *gin.Engine) {
	health := r.Group("/health")

	health.GET("/live", h.Live)
	health.GET("/ready", h.Ready)
}
