package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Patrimonio-api/internal/application/asset"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// MaxInvoiceBytes tamaño máximo de la nota fiscal (PDF).
const MaxInvoiceBytes = 10 << 20

// AssetService casos de uso de patrimonios que expone la API.
type AssetService interface {
	Create(ctx context.Context, in dto.AssetRequest, invoiceRef *string, actor string) (*dto.AssetResponse, error)
	Update(ctx context.Context, id int64, in dto.AssetRequest, newInvoiceRef *string, actor string) (*dto.AssetResponse, error)
	QuickUpdate(ctx context.Context, id int64, in dto.QuickUpdateRequest, actor string) (*dto.AssetResponse, error)
	Delete(ctx context.Context, ids []int64) (int64, error)
	Get(ctx context.Context, id int64) (*dto.AssetResponse, error)
	GetByTag(ctx context.Context, tag string) (*dto.AssetResponse, error)
	List(ctx context.Context, q dto.AssetListQuery) (*dto.AssetListResponse, error)
	SimpleSearch(ctx context.Context, term string) ([]dto.AssetResponse, error)
	NextTag(ctx context.Context) (*dto.NextTagResponse, error)
	History(ctx context.Context, id int64) ([]dto.HistoryResponse, error)
	Import(ctx context.Context, r io.Reader, actor string) (*dto.ImportResponse, error)
	ExportCSV(ctx context.Context, q dto.AssetListQuery, w io.Writer) error
}

// BulkService acciones homogéneas sobre varios patrimonios.
type BulkService interface {
	Apply(ctx context.Context, ids []int64, action entity.BulkAction, actor string) (int64, error)
}

var (
	_ AssetService = (*asset.UseCase)(nil)
	_ BulkService  = (*asset.BulkUseCase)(nil)
)

// AssetHandler maneja las peticiones HTTP de patrimonios (solo admin).
type AssetHandler struct {
	uc         AssetService
	bulk       BulkService
	files      ports.FileStore
	invoiceDir string
}

// NewAssetHandler construye el handler. invoiceDir es el subdirectorio público de las notas fiscales.
func NewAssetHandler(uc AssetService, bulk BulkService, files ports.FileStore, invoiceDir string) *AssetHandler {
	return &AssetHandler{uc: uc, bulk: bulk, files: files, invoiceDir: invoiceDir}
}

// Create godoc
// @Summary      Cadastrar patrimônio
// @Description  Acepta JSON o multipart/form-data con el archivo opcional nota_fiscal_pdf.
// @Tags         patrimonios
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.AssetRequest  true  "Datos del patrimonio"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/patrimonios [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.AssetRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	ref, err := h.saveInvoice(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, ref, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar patrimônio
// @Description  Edición completa. nota_fiscal_pdf reemplaza la nota; remover_nota_fiscal=true la quita.
// @Tags         patrimonios
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  int  true  "ID del patrimonio"
// @Param        body  body  dto.AssetRequest  true  "Datos del patrimonio"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/patrimonios/{id} [post]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AssetRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	ref, err := h.saveInvoice(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, ref, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QuickUpdate godoc
// @Summary      Atualização rápida (responsável e setor)
// @Tags         patrimonios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del patrimonio"
// @Param        body  body  dto.QuickUpdateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/patrimonios/{id} [patch]
func (h *AssetHandler) QuickUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.QuickUpdateRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.QuickUpdate(c.UserContext(), id, in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkUpdate godoc
// @Summary      Atualização em lote
// @Tags         patrimonios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateRequest  true  "ids, action y value"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/patrimonios/bulk-update [post]
func (h *AssetHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	action, err := asset.ParseBulkAction(in.Action, in.Value)
	if err != nil {
		return writeError(c, err)
	}
	n, err := h.bulk.Apply(c.UserContext(), in.IDs, action, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Message: pluralItems(n, "atualizados"), Affected: n})
}

// DeleteBatch godoc
// @Summary      Excluir patrimônios em lote
// @Tags         patrimonios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkDeleteRequest  true  "ids"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/patrimonios/delete-lote [post]
func (h *AssetHandler) DeleteBatch(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	n, err := h.uc.Delete(c.UserContext(), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MutationResponse{Message: pluralItems(n, "excluídos"), Affected: n})
}

// List godoc
// @Summary      Listar patrimônios
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (1-based)"
// @Param        search  query  string  false  "Búsqueda libre"
// @Param        tipo    query  string  false  "Campo: patrimonio, nome, responsavel, setor"
// @Param        termo   query  string  false  "Término para el campo"
// @Success      200     {object}  dto.AssetListResponse
// @Router       /api/patrimonios [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter patrimônio
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del patrimonio"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patrimonios/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico do patrimônio
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del patrimonio"
// @Success      200  {array}   dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patrimonios/{id}/historico [get]
func (h *AssetHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.History(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextTag godoc
// @Summary      Próximo número de patrimônio
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextTagResponse
// @Router       /api/patrimonios/next-tag [get]
func (h *AssetHandler) NextTag(c *fiber.Ctx) error {
	out, err := h.uc.NextTag(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByTag godoc
// @Summary      Buscar patrimônio pela etiqueta
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Param        tag  path  string  true  "Etiqueta"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/patrimonio/tag/{tag} [get]
func (h *AssetHandler) GetByTag(c *fiber.Ctx) error {
	out, err := h.uc.GetByTag(c.UserContext(), c.Params("tag"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SimpleSearch godoc
// @Summary      Pesquisa simples
// @Tags         patrimonios
// @Security     Bearer
// @Produce      json
// @Param        termo  query  string  true  "Etiqueta, nombre o responsable"
// @Success      200    {array}  dto.AssetResponse
// @Router       /api/simple-search [get]
func (h *AssetHandler) SimpleSearch(c *fiber.Ctx) error {
	term := c.Query("termo")
	if term == "" {
		term = c.Query("q")
	}
	out, err := h.uc.SimpleSearch(c.UserContext(), term)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar CSV
// @Description  Campo csvfile. Separador ";" o "," detectado automáticamente.
// @Tags         patrimonios
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        csvfile  formData  file  true  "Archivo CSV"
// @Success      200      {object}  dto.ImportResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/patrimonios/import [post]
func (h *AssetHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("csvfile")
	if err != nil {
		return writeError(c, domain.Invalid("Nenhum arquivo CSV enviado."))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, domain.Storage("open upload", err))
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), f, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar CSV
// @Tags         patrimonios
// @Security     Bearer
// @Produce      text/csv
// @Param        search  query  string  false  "Búsqueda libre"
// @Param        tipo    query  string  false  "Campo"
// @Param        termo   query  string  false  "Término"
// @Success      200
// @Router       /api/patrimonios/export [get]
func (h *AssetHandler) Export(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), q, &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="patrimonios.csv"`)
	return c.Send(buf.Bytes())
}

// ── helpers ───────────────────────────────────────────────────────────────────

// saveInvoice guarda nota_fiscal_pdf si vino en el multipart. Sin archivo devuelve nil.
func (h *AssetHandler) saveInvoice(c *fiber.Ctx) (*string, error) {
	fh, err := c.FormFile("nota_fiscal_pdf")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, domain.Invalid("Arquivo da nota fiscal inválido.")
	}
	if err := checkInvoice(fh); err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, domain.Storage("open upload", err)
	}
	defer f.Close()

	ref, err := h.files.Save(c.UserContext(), h.invoiceDir, fh.Filename, f)
	if err != nil {
		return nil, domain.Storage("save invoice", err)
	}
	return &ref, nil
}

func checkInvoice(fh *multipart.FileHeader) error {
	if fh.Size > MaxInvoiceBytes {
		return domain.Invalid("A nota fiscal excede o limite de 10MB.")
	}
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
		return domain.Invalid("Apenas arquivos PDF são permitidos!")
	}
	return nil
}

func parseListQuery(c *fiber.Ctx) (dto.AssetListQuery, error) {
	var q dto.AssetListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, domain.Invalid("Parâmetros de consulta inválidos.")
	}
	return q, validateStruct(q)
}

func pluralItems(n int64, verb string) string {
	if n == 1 {
		return "1 item " + strings.TrimSuffix(verb, "s") + " com sucesso."
	}
	return strconv.FormatInt(n, 10) + " itens " + verb + " com sucesso."
}
