package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// groupQueries agrupamientos del panel. $1 es el límite.
var groupQueries = map[string]string{
	repository.GroupBySector: `
	SELECT s.nome                            AS label,
	       COUNT(p.id)                       AS total,
	       COALESCE(SUM(p.valor_unitario), 0) AS valor
	FROM patrimonio p
	JOIN setores s ON s.id = p.setor_id
	GROUP BY s.nome
	ORDER BY total DESC, label
	LIMIT $1`,
	repository.GroupByName: `
	SELECT COALESCE(p.nome, '')              AS label,
	       COUNT(p.id)                       AS total,
	       COALESCE(SUM(p.valor_unitario), 0) AS valor
	FROM patrimonio p
	GROUP BY p.nome
	ORDER BY total DESC, label
	LIMIT $1`,
	// Solo ítems con valor: el gráfico de valor ignora los de costo cero.
	repository.GroupByValueName: `
	SELECT COALESCE(p.nome, '')              AS label,
	       COUNT(p.id)                       AS total,
	       SUM(p.valor_unitario)             AS valor
	FROM patrimonio p
	WHERE p.valor_unitario > 0
	GROUP BY p.nome
	ORDER BY valor DESC, label
	LIMIT $1`,
}

// DashboardRepo consultas de solo lectura para el panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) Totals(ctx context.Context) (int64, decimal.Decimal, error) {
	var (
		count int64
		value decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `SELECT COUNT(id), COALESCE(SUM(valor_unitario), 0) FROM patrimonio`).Scan(&count, &value)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("dashboard.Totals: %w", err)
	}
	return count, value, nil
}

func (r *DashboardRepo) GroupBy(ctx context.Context, dimension string, limit int) ([]repository.GroupRow, error) {
	query, ok := groupQueries[dimension]
	if !ok {
		return nil, fmt.Errorf("dashboard.GroupBy: dimensión desconocida %q", dimension)
	}
	return r.groupRows(ctx, "dashboard.GroupBy", query, limit)
}

func (r *DashboardRepo) CountByStatus(ctx context.Context) ([]repository.GroupRow, error) {
	const query = `
	SELECT COALESCE(NULLIF(status, ''), 'Sem status') AS label,
	       COUNT(id)                                  AS total,
	       COALESCE(SUM(valor_unitario), 0)           AS valor
	FROM patrimonio
	GROUP BY 1
	ORDER BY total DESC`
	return r.groupRows(ctx, "dashboard.CountByStatus", query)
}

func (r *DashboardRepo) groupRows(ctx context.Context, op, query string, args ...any) ([]repository.GroupRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.GroupRow
	for rows.Next() {
		var row repository.GroupRow
		if err := rows.Scan(&row.Label, &row.Count, &row.Value); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
