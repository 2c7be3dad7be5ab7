package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenMaintenanceRequest envío de un patrimonio a reparación.
type OpenMaintenanceRequest struct {
	SentAt   Date   `json:"data_envio" swaggertype:"string" example:"2026-03-10"`
	Problem  string `json:"problema_relatado" validate:"required"`
	Provider string `json:"fornecedor_servico"`
	Status   string `json:"status_manutencao" validate:"required"`
	Notes    string `json:"observacoes"`
}

// CloseMaintenanceRequest actualización o cierre de una orden.
type CloseMaintenanceRequest struct {
	AssetID        int64   `json:"patrimonio_id" validate:"required,gt=0"`
	ReturnedAt     Date    `json:"data_retorno" swaggertype:"string" example:"2026-03-20"`
	Provider       string  `json:"fornecedor_servico"`
	Cost           *string `json:"custo"`
	Status         string  `json:"status_manutencao" validate:"required"`
	NewAssetStatus string  `json:"novo_status_patrimonio" validate:"required"`
	Notes          string  `json:"observacoes"`
}

// MaintenanceResponse salida de una orden de mantenimiento.
type MaintenanceResponse struct {
	ID         int64            `json:"id"`
	AssetID    int64            `json:"patrimonio_id"`
	SentAt     time.Time        `json:"data_envio"`
	ReturnedAt *time.Time       `json:"data_retorno"`
	Problem    string           `json:"problema_relatado"`
	Provider   string           `json:"fornecedor_servico"`
	Cost       *decimal.Decimal `json:"custo"`
	Status     string           `json:"status_manutencao"`
	Notes      string           `json:"observacoes"`
	CreatedAt  time.Time        `json:"criado_em"`
}
