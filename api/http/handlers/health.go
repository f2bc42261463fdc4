package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/api/http/presenter"
	"github.com/artem13815/resumecompare/pkg/health"
)

// readyTimeout bounds the whole probe; each checker has its own shorter deadline.
const readyTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

type readinessResponse struct {
	Status string        `json:"status"`
	Checks health.Report `json:"checks"`
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ok"})
}

// Ready runs every configured dependency check and reports each one.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router  /api/v1/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()
	report, err := h.svc.Ready(ctx)
	if err != nil {
		middleware.Logger(c).Warn("not ready", zap.Error(err))
		return presenter.JSON(c, http.StatusServiceUnavailable, readinessResponse{Status: "not_ready", Checks: report})
	}
	return presenter.JSON(c, http.StatusOK, readinessResponse{Status: "ready", Checks: report})
}
