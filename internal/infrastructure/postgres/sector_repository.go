package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación del puerto SectorRepository sobre PostgreSQL.
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

func (r *SectorRepo) List(ctx context.Context) ([]*entity.Sector, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nome FROM setores ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SectorRepo) GetByID(ctx context.Context, id int64) (*entity.Sector, error) {
	var s entity.Sector
	err := r.q.QueryRow(ctx, `SELECT id, nome FROM setores WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

// Names se lee en cada operación para que el diff nunca use nombres viejos.
func (r *SectorRepo) Names(ctx context.Context) (map[int64]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nome FROM setores`)
	if err != nil {
		return nil, fmt.Errorf("sector names: %w", err)
	}
	defer rows.Close()
	names := make(map[int64]string)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan sector name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Create falla con ConflictError si ya existe un sector con el mismo nombre (sin distinguir mayúsculas).
func (r *SectorRepo) Create(ctx context.Context, name string) (*entity.Sector, error) {
	s := entity.Sector{Name: name}
	err := r.q.QueryRow(ctx, `INSERT INTO setores (nome) VALUES ($1) RETURNING id`, name).Scan(&s.ID)
	if err != nil {
		return nil, translate("insert sector", err)
	}
	return &s, nil
}

func (r *SectorRepo) FindOrCreate(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO setores (nome) VALUES ($1)
		ON CONFLICT (LOWER(nome)) DO UPDATE SET nome = setores.nome
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, translate("find or create sector", err)
	}
	return id, nil
}
