package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo histórico append-only; no expone update ni delete.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Para escribir, pasar la tx de la mutación.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

func (r *HistoryRepo) Append(ctx context.Context, e *entity.HistoryEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO historico (patrimonio_id, acao, detalhes, utilizador)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp`,
		e.AssetID, e.Action, e.Details, e.Actor,
	).Scan(&e.ID, &e.Timestamp)
	if err != nil {
		return translate("insert history", err)
	}
	return nil
}

// AppendForAssets una fila por id en una sola sentencia (unnest).
// Un id inexistente viola la FK y la sentencia entera falla.
func (r *HistoryRepo) AppendForAssets(ctx context.Context, ids []int64, action, details, actor string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO historico (patrimonio_id, acao, detalhes, utilizador)
		SELECT unnest($1::int8[]), $2, $3, $4`,
		ids, action, details, actor,
	)
	if err != nil {
		return 0, translate("insert bulk history", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HistoryRepo) ListByAsset(ctx context.Context, assetID int64) ([]*entity.HistoryEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, patrimonio_id, acao, COALESCE(detalhes, ''), COALESCE(utilizador, ''), timestamp
		FROM historico
		WHERE patrimonio_id = $1
		ORDER BY timestamp DESC, id DESC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Action, &e.Details, &e.Actor, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
