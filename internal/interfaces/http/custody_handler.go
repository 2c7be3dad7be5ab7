package http

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

// CustodyService término de responsabilidad.
type CustodyService interface {
	Term(ctx context.Context, responsible string) (*dto.CustodyTermResponse, error)
	TermPDF(ctx context.Context, responsible string) ([]byte, string, error)
}

var _ CustodyService = (*usecase.CustodyUseCase)(nil)

// CustodyHandler maneja /api/termo/responsavel.
type CustodyHandler struct {
	uc CustodyService
}

// NewCustodyHandler construye el handler.
func NewCustodyHandler(uc CustodyService) *CustodyHandler {
	return &CustodyHandler{uc: uc}
}

// Term godoc
// @Summary      Equipamentos sob responsabilidade
// @Tags         termo
// @Security     Bearer
// @Produce      json
// @Param        responsavel  path  string  true  "Nombre o e-mail"
// @Success      200  {object}  dto.CustodyTermResponse
// @Router       /api/termo/responsavel/{responsavel} [get]
func (h *CustodyHandler) Term(c *fiber.Ctx) error {
	who, err := responsibleParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Term(c.UserContext(), who)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TermPDF godoc
// @Summary      Termo de responsabilidade em PDF
// @Tags         termo
// @Security     Bearer
// @Produce      application/pdf
// @Param        responsavel  path  string  true  "Nombre o e-mail"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/termo/responsavel/{responsavel}/pdf [get]
func (h *CustodyHandler) TermPDF(c *fiber.Ctx) error {
	who, err := responsibleParam(c)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.uc.TermPDF(c.UserContext(), who)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func responsibleParam(c *fiber.Ctx) (string, error) {
	who, err := url.PathUnescape(c.Params("responsavel"))
	if err != nil {
		return "", domain.Invalid("Responsável inválido.")
	}
	return who, nil
}
