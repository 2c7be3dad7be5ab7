package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/maintenance"
)

// MaintenanceService órdenes de mantenimiento de un patrimonio.
type MaintenanceService interface {
	Open(ctx context.Context, assetID int64, in dto.OpenMaintenanceRequest, actor string) (*dto.MaintenanceResponse, error)
	Close(ctx context.Context, recordID int64, in dto.CloseMaintenanceRequest, actor string) (*dto.MaintenanceResponse, error)
	Delete(ctx context.Context, recordID int64) error
	ListByAsset(ctx context.Context, assetID int64) ([]dto.MaintenanceResponse, error)
}

var _ MaintenanceService = (*maintenance.UseCase)(nil)

// MaintenanceHandler maneja /api/patrimonios/:id/manutencoes y /api/manutencoes/:manutencao_id.
type MaintenanceHandler struct {
	uc MaintenanceService
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// List godoc
// @Summary      Listar manutenções do patrimônio
// @Tags         manutencoes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del patrimonio"
// @Success      200  {array}  dto.MaintenanceResponse
// @Router       /api/patrimonios/{id}/manutencoes [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByAsset(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Open godoc
// @Summary      Enviar patrimônio para manutenção
// @Tags         manutencoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del patrimonio"
// @Param        body  body  dto.OpenMaintenanceRequest  true  "Orden"
// @Success      201   {object}  dto.MaintenanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/patrimonios/{id}/manutencoes [post]
func (h *MaintenanceHandler) Open(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.OpenMaintenanceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Open(c.UserContext(), id, in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Atualizar ou concluir manutenção
// @Tags         manutencoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        manutencao_id  path  int  true  "ID de la orden"
// @Param        body           body  dto.CloseMaintenanceRequest  true  "Cierre"
// @Success      200            {object}  dto.MaintenanceResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Failure      404            {object}  dto.ErrorResponse
// @Router       /api/manutencoes/{manutencao_id} [put]
func (h *MaintenanceHandler) Close(c *fiber.Ctx) error {
	id, err := paramID(c, "manutencao_id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CloseMaintenanceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Close(c.UserContext(), id, in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir registro de manutenção
// @Tags         manutencoes
// @Security     Bearer
// @Param        manutencao_id  path  int  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/manutencoes/{manutencao_id} [delete]
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "manutencao_id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
