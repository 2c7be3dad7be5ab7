package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Patrimonio-api/internal/application/analytics"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
)

// DashboardService resumen del panel.
type DashboardService interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

var _ DashboardService = (*appanalytics.DashboardUseCase)(nil)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve totales y agrupamientos (setor, nome, valor por nome, status).
// GET /api/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
