package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AssetRequest entrada para crear o editar un patrimonio (JSON o multipart).
// UnitValue llega tal como lo escribió el usuario ("R$ 1.234,56") y se normaliza en el use case.
type AssetRequest struct {
	Name             string `json:"nome" form:"nome" validate:"required,max=255"`
	Tag              string `json:"patrimonio" form:"patrimonio" validate:"required,max=100"`
	SectorID         int64  `json:"setor_id" form:"setor_id" validate:"required,gt=0"`
	ResponsibleName  string `json:"responsavel_nome" form:"responsavel_nome"`
	ResponsibleEmail string `json:"responsavel_email" form:"responsavel_email" validate:"omitempty,email"`
	UnitValue        string `json:"valor_unitario" form:"valor_unitario"`
	InvoiceNumber    string `json:"nota_fiscal" form:"nota_fiscal"`
	Brand            string `json:"marca" form:"marca"`
	Model            string `json:"modelo" form:"modelo"`
	SerialNumber     string `json:"numero_serie" form:"numero_serie"`
	AcquisitionDate  string `json:"data_aquisicao" form:"data_aquisicao"`
	Supplier         string `json:"fornecedor" form:"fornecedor"`
	Warranty         string `json:"garantia" form:"garantia"`
	Status           string `json:"status" form:"status"`
	Notes            string `json:"observacao" form:"observacao"`
	// RemoveInvoice solo aplica en edición.
	RemoveInvoice bool `json:"remover_nota_fiscal" form:"remover_nota_fiscal"`
}

// QuickUpdateRequest actualización rápida: solo responsable y sector.
// Un campo ausente (nil) no se toca; setor_id 0 deja el patrimonio sin sector.
type QuickUpdateRequest struct {
	ResponsibleName  *string `json:"responsavel_nome"`
	ResponsibleEmail *string `json:"responsavel_email" validate:"omitempty,email"`
	SectorID         *int64  `json:"setor_id" validate:"omitempty,gte=0"`
}

// BulkUpdateRequest acción homogénea sobre varios patrimonios.
// Value depende de Action: id de sector, texto de estado u objeto {name, email}.
type BulkUpdateRequest struct {
	IDs    []int64         `json:"ids" validate:"required,min=1,dive,gt=0"`
	Action string          `json:"action" validate:"required,oneof=change_sector change_status assign_responsible"`
	Value  json.RawMessage `json:"value" swaggertype:"object"`
}

// BulkDeleteRequest ids a eliminar.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// AssetListQuery filtros del listado (query string).
type AssetListQuery struct {
	Page   int    `query:"page"`
	Search string `query:"search"`
	Field  string `query:"tipo" validate:"omitempty,oneof=patrimonio nome responsavel setor"`
	Term   string `query:"termo"`
}

// AssetResponse salida de un patrimonio.
type AssetResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"nome"`
	Tag              string          `json:"patrimonio"`
	SectorID         *int64          `json:"setor_id"`
	SectorName       string          `json:"setor_nome,omitempty"`
	ResponsibleName  string          `json:"responsavel_nome"`
	ResponsibleEmail string          `json:"responsavel_email"`
	UnitValue        decimal.Decimal `json:"valor_unitario"`
	InvoiceNumber    string          `json:"nota_fiscal"`
	InvoiceURL       *string         `json:"nota_fiscal_url"`
	Brand            string          `json:"marca"`
	Model            string          `json:"modelo"`
	SerialNumber     string          `json:"numero_serie"`
	AcquisitionDate  string          `json:"data_aquisicao"`
	Supplier         string          `json:"fornecedor"`
	Warranty         string          `json:"garantia"`
	Status           string          `json:"status"`
	Notes            string          `json:"observacao"`
	CreatedAt        time.Time       `json:"cadastrado_em"`
	UpdatedAt        time.Time       `json:"atualizado_em"`
}

// AssetListResponse página del listado.
type AssetListResponse struct {
	Items      []AssetResponse `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// HistoryResponse entrada del histórico.
type HistoryResponse struct {
	ID        int64     `json:"id"`
	AssetID   int64     `json:"patrimonio_id"`
	Action    string    `json:"acao"`
	Details   string    `json:"detalhes"`
	Actor     string    `json:"utilizador"`
	Timestamp time.Time `json:"timestamp"`
}

// NextTagResponse próxima etiqueta sugerida.
type NextTagResponse struct {
	NextTag string `json:"nextPatrimonio"`
}

// MutationResponse confirmación genérica de una mutación.
type MutationResponse struct {
	Message  string `json:"message"`
	ID       int64  `json:"id,omitempty"`
	Affected int64  `json:"affected,omitempty"`
}

// ImportResponse resultado de la importación CSV.
type ImportResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
}

// CustodyTermResponse equipos bajo responsabilidad de una persona.
type CustodyTermResponse struct {
	Responsible string          `json:"responsavel"`
	Items       []AssetResponse `json:"items"`
	TotalValue  decimal.Decimal `json:"valor_total"`
}
