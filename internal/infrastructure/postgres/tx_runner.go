package postgres

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/application/asset"
	"github.com/jhoicas/Patrimonio-api/internal/application/maintenance"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// Ensure TxRunner implements asset.TxRunner and maintenance.TxRunner.
var _ asset.TxRunner = (*TxRunner)(nil)
var _ maintenance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	sectors repository.SectorRepository,
	history repository.HistoryRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAssetRepository(tx), NewSectorRepository(tx), NewHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}

// RunMaintenance inicia una transacción con los repos de mantenimiento, patrimonio e histórico.
func (r *TxRunner) RunMaintenance(ctx context.Context, fn func(
	records repository.MaintenanceRepository,
	assets repository.AssetRepository,
	history repository.HistoryRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMaintenanceRepository(tx), NewAssetRepository(tx), NewHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}
