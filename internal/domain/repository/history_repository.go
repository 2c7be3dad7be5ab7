package repository

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// HistoryRepository ledger append-only de mutaciones.
// Las escrituras solo se obtienen desde un TxRunner, dentro de la transacción del llamador.
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	// AppendForAssets inserta una fila por id con la misma acción y detalle.
	AppendForAssets(ctx context.Context, assetIDs []int64, action, details, actor string) (int64, error)
	// ListByAsset más reciente primero.
	ListByAsset(ctx context.Context, assetID int64) ([]*entity.HistoryEntry, error)
}
