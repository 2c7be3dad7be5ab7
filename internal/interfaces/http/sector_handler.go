package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/usecase"
)

// SectorService catálogo de sectores.
type SectorService interface {
	List(ctx context.Context) ([]dto.SectorResponse, error)
	Create(ctx context.Context, in dto.SectorRequest) (*dto.SectorResponse, error)
}

var _ SectorService = (*usecase.SectorUseCase)(nil)

// SectorHandler maneja /api/setores.
type SectorHandler struct {
	uc SectorService
}

// NewSectorHandler construye el handler.
func NewSectorHandler(uc SectorService) *SectorHandler {
	return &SectorHandler{uc: uc}
}

// List godoc
// @Summary      Listar setores
// @Tags         setores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SectorResponse
// @Router       /api/setores [get]
func (h *SectorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar setor
// @Tags         setores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SectorRequest  true  "Nombre"
// @Success      201   {object}  dto.SectorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/setores [post]
func (h *SectorHandler) Create(c *fiber.Ctx) error {
	var in dto.SectorRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
