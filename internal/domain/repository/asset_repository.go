package repository

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// AssetRepository define el puerto de persistencia para Asset (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Asset, error)
	// GetForUpdate lee y bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error)
	GetByTag(ctx context.Context, tag string) (*entity.Asset, error)
	// Update escribe todos los campos editables y actualiza atualizado_em.
	Update(ctx context.Context, asset *entity.Asset) error
	SetStatus(ctx context.Context, id int64, status string) error
	// ApplyBulk aplica la acción a todos los ids en una sola sentencia; devuelve filas afectadas.
	ApplyBulk(ctx context.Context, ids []int64, action entity.BulkAction) (int64, error)
	// InvoiceRefs referencias de nota fiscal no nulas de los ids dados.
	InvoiceRefs(ctx context.Context, ids []int64) ([]string, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	// Upsert inserta o actualiza por etiqueta; inserted indica si la fila es nueva.
	Upsert(ctx context.Context, asset *entity.Asset) (id int64, inserted bool, err error)

	// List paginado; limit <= 0 devuelve todo (exportación).
	List(ctx context.Context, filter entity.AssetFilter, limit, offset int) ([]*entity.Asset, int, error)
	SimpleSearch(ctx context.Context, term string, limit int) ([]*entity.Asset, error)
	ListByResponsible(ctx context.Context, nameOrEmail string) ([]*entity.Asset, error)
	// MaxNumericTag mayor valor numérico entre las etiquetas (0 si no hay).
	MaxNumericTag(ctx context.Context) (int64, error)
}
