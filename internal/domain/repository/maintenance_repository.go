package repository

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// MaintenanceRepository persistencia de órdenes de mantenimiento.
type MaintenanceRepository interface {
	Create(ctx context.Context, rec *entity.MaintenanceRecord) error
	GetForUpdate(ctx context.Context, id int64) (*entity.MaintenanceRecord, error)
	Update(ctx context.Context, rec *entity.MaintenanceRecord) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	// ListByAsset ordenado por fecha de envío descendente.
	ListByAsset(ctx context.Context, assetID int64) ([]*entity.MaintenanceRecord, error)
}
