package asset

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ninguna mutación queda sin su entrada de histórico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assets repository.AssetRepository,
		sectors repository.SectorRepository,
		history repository.HistoryRepository,
	) error) error
}
