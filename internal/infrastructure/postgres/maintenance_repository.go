package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

const maintenanceColumns = `id, patrimonio_id, data_envio, data_retorno, problema_relatado,
	COALESCE(fornecedor_servico, ''), custo, status_manutencao, COALESCE(observacoes, ''), criado_em`

// MaintenanceRepo órdenes de mantenimiento (tabla manutencoes).
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

func scanMaintenance(row pgx.Row) (*entity.MaintenanceRecord, error) {
	var m entity.MaintenanceRecord
	err := row.Scan(&m.ID, &m.AssetID, &m.SentAt, &m.ReturnedAt, &m.Problem,
		&m.Provider, &m.Cost, &m.Status, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.MaintenanceRecord) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO manutencoes (patrimonio_id, data_envio, problema_relatado, fornecedor_servico, status_manutencao, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, criado_em`,
		m.AssetID, m.SentAt, m.Problem, nullIfEmpty(m.Provider), m.Status, nullIfEmpty(m.Notes),
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return translate("insert maintenance", err)
	}
	return nil
}

func (r *MaintenanceRepo) GetForUpdate(ctx context.Context, id int64) (*entity.MaintenanceRecord, error) {
	m, err := scanMaintenance(r.q.QueryRow(ctx,
		`SELECT `+maintenanceColumns+` FROM manutencoes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance: %w", err)
	}
	return m, nil
}

func (r *MaintenanceRepo) Update(ctx context.Context, m *entity.MaintenanceRecord) error {
	_, err := r.q.Exec(ctx, `
		UPDATE manutencoes SET
			data_retorno = $2, fornecedor_servico = $3, custo = $4, status_manutencao = $5, observacoes = $6
		WHERE id = $1`,
		m.ID, m.ReturnedAt, nullIfEmpty(m.Provider), m.Cost, m.Status, nullIfEmpty(m.Notes),
	)
	return translate("update maintenance", err)
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM manutencoes WHERE id = $1`, id)
	if err != nil {
		return false, translate("delete maintenance", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MaintenanceRepo) ListByAsset(ctx context.Context, assetID int64) ([]*entity.MaintenanceRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+maintenanceColumns+` FROM manutencoes WHERE patrimonio_id = $1 ORDER BY data_envio DESC, id DESC`, assetID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceRecord
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
