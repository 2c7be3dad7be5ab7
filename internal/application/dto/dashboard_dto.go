package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Totales del inventario más los agrupamientos del panel (top 10 cada uno).
type DashboardSummaryDTO struct {
	TotalItems int64           `json:"total_itens"`
	TotalValue decimal.Decimal `json:"valor_total"`
	// Valor total formateado en reales, listo para mostrar.
	TotalValueLabel string `json:"valor_total_formatado"`

	BySector    []GroupDTO `json:"por_setor"`
	ByName      []GroupDTO `json:"por_nome"`
	ValueByName []GroupDTO `json:"valor_por_nome"`
	ByStatus    []GroupDTO `json:"por_status"`
}

// GroupDTO una barra del gráfico.
type GroupDTO struct {
	Label string          `json:"label"`
	Count int64           `json:"count"`
	Value decimal.Decimal `json:"value"`
}
