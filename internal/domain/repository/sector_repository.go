package repository

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// SectorRepository define el puerto de persistencia para Sector.
type SectorRepository interface {
	List(ctx context.Context) ([]*entity.Sector, error)
	GetByID(ctx context.Context, id int64) (*entity.Sector, error)
	// Names mapa id -> nombre; se consulta en cada operación, nunca se cachea.
	Names(ctx context.Context) (map[int64]string, error)
	Create(ctx context.Context, name string) (*entity.Sector, error)
	// FindOrCreate busca por nombre sin distinguir mayúsculas y lo crea si no existe.
	FindOrCreate(ctx context.Context, name string) (int64, error)
}
