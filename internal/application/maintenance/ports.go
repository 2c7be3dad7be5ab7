package maintenance

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios que toca una orden de mantenimiento.
type TxRunner interface {
	RunMaintenance(ctx context.Context, fn func(
		records repository.MaintenanceRepository,
		assets repository.AssetRepository,
		history repository.HistoryRepository,
	) error) error
}
