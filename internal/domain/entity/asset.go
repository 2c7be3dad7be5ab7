package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de un patrimonio.
const (
	AssetStatusInUse         = "Em Uso"
	AssetStatusInStock       = "Em Estoque"
	AssetStatusDamaged       = "Danificado"
	AssetStatusDiscarded     = "Descartado"
	AssetStatusInMaintenance = "Em Manutenção"
)

// AssetStatuses lista de estados conocidos (para validación y formularios).
var AssetStatuses = []string{
	AssetStatusInUse,
	AssetStatusInStock,
	AssetStatusDamaged,
	AssetStatusDiscarded,
	AssetStatusInMaintenance,
}

// Asset representa un bien patrimonial con etiqueta única.
// Los textos opcionales vacíos se guardan como NULL.
type Asset struct {
	ID               int64
	Name             string
	Tag              string // etiqueta (patrimonio), única
	SectorID         *int64 // nil cuando el sector fue eliminado
	SectorName       string // solo lectura (join)
	ResponsibleName  string
	ResponsibleEmail string
	UnitValue        decimal.Decimal
	InvoiceNumber    string
	InvoiceRef       *string // ruta pública del archivo de nota fiscal
	Brand            string
	Model            string
	SerialNumber     string
	AcquisitionDate  string // texto libre, tal como se cargó
	Supplier         string
	Warranty         string
	Status           string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Clone copia superficial con punteros duplicados, para comparar antes/después.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	c := *a
	if a.SectorID != nil {
		v := *a.SectorID
		c.SectorID = &v
	}
	if a.InvoiceRef != nil {
		v := *a.InvoiceRef
		c.InvoiceRef = &v
	}
	return &c
}

// AssetFilter criterios del listado paginado.
// Search busca en todos los campos de texto; Field+Term restringen a un campo.
type AssetFilter struct {
	Search string
	Field  string // patrimonio | nome | responsavel | setor
	Term   string
}

// Campos aceptados en AssetFilter.Field.
const (
	FilterFieldTag         = "patrimonio"
	FilterFieldName        = "nome"
	FilterFieldResponsible = "responsavel"
	FilterFieldSector      = "setor"
)
