package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/application/backup"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

// BackupService copias de seguridad de la base.
type BackupService interface {
	Create(ctx context.Context) (*dto.BackupFileDTO, error)
	List(ctx context.Context) ([]dto.BackupFileDTO, error)
	Path(name string) (string, error)
	Delete(ctx context.Context, name string) error
	Import(ctx context.Context, filename string, r io.Reader) (*dto.BackupFileDTO, error)
	Restore(ctx context.Context, name string) error
}

var _ BackupService = (*backup.UseCase)(nil)

// BackupHandler maneja /api/backups (solo admin).
type BackupHandler struct {
	uc BackupService
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc BackupService) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Create godoc
// @Summary      Gerar backup
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupFileDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar backups
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BackupFileDTO
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Baixar backup
// @Tags         backups
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        filename  path  string  true  "Nombre del archivo"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{filename} [get]
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	name := c.Params("filename")
	path, err := h.uc.Path(name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Download(path, name)
}

// Delete godoc
// @Summary      Excluir backup
// @Tags         backups
// @Security     Bearer
// @Param        filename  path  string  true  "Nombre del archivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{filename} [delete]
func (h *BackupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("filename")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Enviar arquivo de backup
// @Tags         backups
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        backup  formData  file  true  "Archivo .bz2 o .sql"
// @Success      201     {object}  dto.BackupFileDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/backups/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("backup")
	if err != nil {
		return writeError(c, domain.Invalid("Nenhum arquivo de backup enviado."))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, domain.Storage("open upload", err))
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Restore godoc
// @Summary      Restaurar backup
// @Description  Cierra las demás sesiones de la base y aplica el archivo.
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Param        filename  path  string  true  "Nombre del archivo"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{filename}/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(c.UserContext(), c.Params("filename")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Message: "Backup restaurado com sucesso."})
}
