package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// Dimensiones de agrupación del dashboard.
const (
	GroupBySector    = "setor"
	GroupByName      = "nome"
	GroupByValueName = "valor_por_nome"
)

// GroupRow una fila agrupada: etiqueta, cantidad y valor acumulado.
type GroupRow struct {
	Label string
	Count int64
	Value decimal.Decimal
}

// DashboardRepository consultas read-only para el panel.
type DashboardRepository interface {
	Totals(ctx context.Context) (count int64, value decimal.Decimal, err error)
	GroupBy(ctx context.Context, dimension string, limit int) ([]GroupRow, error)
	CountByStatus(ctx context.Context) ([]GroupRow, error)
}
