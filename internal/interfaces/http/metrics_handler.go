package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Ventana por defecto de las estadísticas de rechazos.
const defaultStatsWindow = time.Hour

// MetricsHandler expone las estadísticas del monitor de rate limiting.
type MetricsHandler struct {
	monitor *ratelimit.Monitor
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(monitor *ratelimit.Monitor) *MetricsHandler {
	return &MetricsHandler{monitor: monitor}
}

// RateLimits godoc
// @Summary      Estadísticas de rechazos por rate limit
// @Tags         metrics
// @Produce      json
// @Param        minutes  query  int  false  "Ventana en minutos (default 60)"
// @Success      200  {object}  ratelimit.Stats
// @Router       /api/admin/metrics/rate-limits [get]
func (h *MetricsHandler) RateLimits(c *fiber.Ctx) error {
	window := defaultStatsWindow
	if minutes := c.QueryInt("minutes"); minutes > 0 {
		window = time.Duration(minutes) * time.Minute
	}
	return c.JSON(h.monitor.GetStats(time.Now().Add(-window)))
}

// Reset godoc
// @Summary      Vaciar el buffer de eventos del monitor
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/admin/metrics/rate-limits [delete]
func (h *MetricsHandler) Reset(c *fiber.Ctx) error {
	h.monitor.Reset()
	return c.JSON(dto.MessageResponse{Message: "monitor reiniciado"})
}
