// Package maintenance gestiona las órdenes de reparación de patrimonios.
// Abrir o cerrar una orden cambia el estado del patrimonio y deja una entrada
// MANUTENÇÃO en el histórico, todo en la misma transacción.
package maintenance

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

const (
	resourceMaintenance = "manutenção"
	resourceAsset       = "patrimônio"
)

// UseCase casos de uso de mantenimiento.
type UseCase struct {
	tx      TxRunner
	records repository.MaintenanceRepository
	metrics ports.MetricsRecorder
}

// NewUseCase records es el repositorio atado al pool, para lecturas y borrado.
func NewUseCase(tx TxRunner, records repository.MaintenanceRepository, metrics ports.MetricsRecorder) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{tx: tx, records: records, metrics: metrics}
}

// Open envía el patrimonio a reparación y lo deja "Em Manutenção".
func (uc *UseCase) Open(ctx context.Context, assetID int64, in dto.OpenMaintenanceRequest, actor string) (*dto.MaintenanceResponse, error) {
	problem := strings.TrimSpace(in.Problem)
	status := strings.TrimSpace(in.Status)
	if in.SentAt.IsZero() || problem == "" || status == "" {
		return nil, domain.Invalid("Data de envio, problema relatado e status são obrigatórios.")
	}
	if !entity.IsOpeningStatus(status) {
		return nil, domain.Invalid("Status inicial inválido: '%s'.", status)
	}

	rec := &entity.MaintenanceRecord{
		AssetID:  assetID,
		SentAt:   in.SentAt.Time,
		Problem:  problem,
		Provider: strings.TrimSpace(in.Provider),
		Status:   status,
		Notes:    strings.TrimSpace(in.Notes),
	}
	err := uc.tx.RunMaintenance(ctx, func(
		records repository.MaintenanceRepository,
		assets repository.AssetRepository,
		history repository.HistoryRepository,
	) error {
		a, err := assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return domain.Storage("load asset", err)
		}
		if a == nil {
			return domain.NotFound(resourceAsset, assetID)
		}
		if err := records.Create(ctx, rec); err != nil {
			return domain.Storage("insert maintenance", err)
		}
		if err := assets.SetStatus(ctx, assetID, entity.AssetStatusInMaintenance); err != nil {
			return domain.Storage("set asset status", err)
		}
		return appendEntry(ctx, history, assetID, changelog.MaintenanceOpened(problem), actor)
	})
	if err != nil {
		uc.metrics.MutationFailed("maintenance_open")
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionMaintenance, 1)
	out := toResponse(rec)
	return &out, nil
}

// Close actualiza o cierra una orden y escribe el estado resultante en el patrimonio.
// Proveedor y observaciones vacíos conservan el valor anterior; lo mismo el costo.
func (uc *UseCase) Close(ctx context.Context, recordID int64, in dto.CloseMaintenanceRequest, actor string) (*dto.MaintenanceResponse, error) {
	status := strings.TrimSpace(in.Status)
	assetStatus := strings.TrimSpace(in.NewAssetStatus)
	if status == "" || in.AssetID <= 0 || assetStatus == "" {
		return nil, domain.Invalid("Status da manutenção, ID do patrimônio e novo status do item são obrigatórios.")
	}
	if !entity.IsMaintenanceStatus(status) {
		return nil, domain.Invalid("Status de manutenção inválido: '%s'.", status)
	}
	var cost *decimal.Decimal
	if in.Cost != nil && strings.TrimSpace(*in.Cost) != "" {
		c := money.Normalize(*in.Cost)
		if !money.Fits(c, money.CostPrecision) {
			return nil, domain.Invalid("Custo inválido: deve estar entre R$ 0,00 e %s.",
				money.FormatBRL(money.Max(money.CostPrecision)))
		}
		cost = &c
	}

	var rec *entity.MaintenanceRecord
	err := uc.tx.RunMaintenance(ctx, func(
		records repository.MaintenanceRepository,
		assets repository.AssetRepository,
		history repository.HistoryRepository,
	) error {
		var err error
		rec, err = records.GetForUpdate(ctx, recordID)
		if err != nil {
			return domain.Storage("load maintenance", err)
		}
		if rec == nil {
			return domain.NotFound(resourceMaintenance, recordID)
		}
		if rec.AssetID != in.AssetID {
			return domain.Invalid("A manutenção %d não pertence ao patrimônio %d.", recordID, in.AssetID)
		}
		if !entity.CanTransitionMaintenance(rec.Status, status) {
			return domain.Invalid("Não é possível alterar a manutenção de '%s' para '%s'.", rec.Status, status)
		}

		rec.Status = status
		if returned := in.ReturnedAt.Ptr(); returned != nil {
			rec.ReturnedAt = returned
		}
		if p := strings.TrimSpace(in.Provider); p != "" {
			rec.Provider = p
		}
		if n := strings.TrimSpace(in.Notes); n != "" {
			rec.Notes = n
		}
		if cost != nil {
			rec.Cost = cost
		}

		if err := records.Update(ctx, rec); err != nil {
			return domain.Storage("update maintenance", err)
		}
		if err := assets.SetStatus(ctx, rec.AssetID, assetStatus); err != nil {
			return domain.Storage("set asset status", err)
		}
		return appendEntry(ctx, history, rec.AssetID, changelog.MaintenanceUpdated(status, assetStatus), actor)
	})
	if err != nil {
		uc.metrics.MutationFailed("maintenance_close")
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionMaintenance, 1)
	out := toResponse(rec)
	return &out, nil
}

// Delete elimina la orden. No genera histórico ni cambia el estado del patrimonio.
func (uc *UseCase) Delete(ctx context.Context, recordID int64) error {
	ok, err := uc.records.Delete(ctx, recordID)
	if err != nil {
		return domain.Storage("delete maintenance", err)
	}
	if !ok {
		return domain.NotFound(resourceMaintenance, recordID)
	}
	return nil
}

// ListByAsset órdenes del patrimonio, envío más reciente primero.
func (uc *UseCase) ListByAsset(ctx context.Context, assetID int64) ([]dto.MaintenanceResponse, error) {
	recs, err := uc.records.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, domain.Storage("list maintenance", err)
	}
	out := make([]dto.MaintenanceResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func appendEntry(ctx context.Context, history repository.HistoryRepository, assetID int64, details, actor string) error {
	err := history.Append(ctx, &entity.HistoryEntry{
		AssetID: assetID,
		Action:  entity.ActionMaintenance,
		Details: details,
		Actor:   actor,
	})
	return domain.Storage("append history", err)
}

func toResponse(r *entity.MaintenanceRecord) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		ID:         r.ID,
		AssetID:    r.AssetID,
		SentAt:     r.SentAt,
		ReturnedAt: r.ReturnedAt,
		Problem:    r.Problem,
		Provider:   r.Provider,
		Cost:       r.Cost,
		Status:     r.Status,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}
}
