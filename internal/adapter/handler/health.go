package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

// Health reports service and model status
type Health struct {
	svc         minutes.Service
	logger      *zap.Logger
	environment string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(svc minutes.Service, logger *zap.Logger, environment string) *Health {
	return &Health{svc: svc, logger: logger, environment: environment}
}

// Liveness handles GET /health
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Service is up"
// @Router       /health [get]
func (h *Health) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": h.environment,
	})
}

// LLMHealth handles GET /llm/health
// @Summary      Language model health
// @Description  Reports whether the summary model is reachable and installed
// @Tags         Health
// @Produce      json
// @Success      200  {object}  minutes.HealthStatus  "Model status"
// @Router       /llm/health [get]
func (h *Health) LLMHealth(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.svc.Health(c.Request().Context()))
}
