// Package asset contiene los casos de uso de patrimonios: alta, edición completa,
// edición rápida, eliminación, acciones en lote, importación/exportación y consultas.
// Toda mutación corre dentro de un TxRunner y deja su entrada en el histórico
// en la misma transacción.
package asset

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

const resourceAsset = "patrimônio"

const simpleSearchLimit = 20

// UseCase casos de uso de mutación y consulta de patrimonios.
type UseCase struct {
	tx      TxRunner
	assets  repository.AssetRepository
	history repository.HistoryRepository
	files   ports.FileStore
	metrics ports.MetricsRecorder
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. assets y history son los repos atados al pool (lecturas).
func NewUseCase(
	tx TxRunner,
	assets repository.AssetRepository,
	history repository.HistoryRepository,
	files ports.FileStore,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{tx: tx, assets: assets, history: history, files: files, metrics: metrics, log: log}
}

// Create valida, normaliza el valor, inserta y registra CRIAÇÃO.
// invoiceRef es la nota fiscal ya guardada en disco; si la operación falla se elimina.
func (uc *UseCase) Create(ctx context.Context, in dto.AssetRequest, invoiceRef *string, actor string) (*dto.AssetResponse, error) {
	if err := validateAsset(in); err != nil {
		uc.discard(ctx, invoiceRef)
		return nil, err
	}
	a := fromRequest(in)
	a.InvoiceRef = invoiceRef

	err := uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.SectorRepository,
		history repository.HistoryRepository,
	) error {
		id, err := assets.Create(ctx, a)
		if err != nil {
			return domain.Storage("insert asset", err)
		}
		a.ID = id
		return appendEntry(ctx, history, id, entity.ActionCreation, changelog.Created(a.Name, a.Tag), actor)
	})
	if err != nil {
		uc.metrics.MutationFailed("create")
		uc.discard(ctx, invoiceRef)
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionCreation, 1)
	out := toAssetResponse(a)
	return &out, nil
}

// Update reemplaza todos los campos editables y registra ATUALIZAÇÃO con el diff.
//
// Nota fiscal: newInvoiceRef no nil la reemplaza; in.RemoveInvoice la quita; si no, se conserva.
// La nota anterior solo se borra del disco después del Commit.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.AssetRequest, newInvoiceRef *string, actor string) (*dto.AssetResponse, error) {
	if err := validateAsset(in); err != nil {
		uc.discard(ctx, newInvoiceRef)
		return nil, err
	}

	var (
		after      *entity.Asset
		superseded *string
	)
	err := uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		sectors repository.SectorRepository,
		history repository.HistoryRepository,
	) error {
		before, err := assets.GetForUpdate(ctx, id)
		if err != nil {
			return domain.Storage("load asset", err)
		}
		if before == nil {
			return domain.NotFound(resourceAsset, id)
		}

		after = fromRequest(in)
		after.ID = before.ID
		after.CreatedAt = before.CreatedAt
		after.InvoiceRef = before.InvoiceRef
		switch {
		case newInvoiceRef != nil:
			after.InvoiceRef = newInvoiceRef
			superseded = before.InvoiceRef
		case in.RemoveInvoice:
			after.InvoiceRef = nil
			superseded = before.InvoiceRef
		}

		if err := assets.Update(ctx, after); err != nil {
			return domain.Storage("update asset", err)
		}
		names, err := sectors.Names(ctx)
		if err != nil {
			return domain.Storage("load sectors", err)
		}
		details := changelog.Diff(before, after, names)
		after.SectorName = changelog.SectorNames(names).Label(after.SectorID)
		return appendEntry(ctx, history, id, entity.ActionUpdate, details, actor)
	})
	if err != nil {
		uc.metrics.MutationFailed("update")
		uc.discard(ctx, newInvoiceRef)
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionUpdate, 1)
	if superseded != nil && (newInvoiceRef == nil || *superseded != *newInvoiceRef) {
		uc.discard(ctx, superseded)
	}
	out := toAssetResponse(after)
	return &out, nil
}

// QuickUpdate cambia solo responsable y/o sector y registra ATUALIZAÇÃO RÁPIDA.
func (uc *UseCase) QuickUpdate(ctx context.Context, id int64, in dto.QuickUpdateRequest, actor string) (*dto.AssetResponse, error) {
	if in.ResponsibleName == nil && in.ResponsibleEmail == nil && in.SectorID == nil {
		return nil, domain.Invalid("Nenhum campo válido para atualização foi fornecido.")
	}

	var after *entity.Asset
	err := uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		sectors repository.SectorRepository,
		history repository.HistoryRepository,
	) error {
		before, err := assets.GetForUpdate(ctx, id)
		if err != nil {
			return domain.Storage("load asset", err)
		}
		if before == nil {
			return domain.NotFound(resourceAsset, id)
		}

		after = before.Clone()
		if in.ResponsibleName != nil {
			after.ResponsibleName = strings.TrimSpace(*in.ResponsibleName)
		}
		if in.ResponsibleEmail != nil {
			after.ResponsibleEmail = strings.TrimSpace(*in.ResponsibleEmail)
		}
		if in.SectorID != nil {
			if *in.SectorID > 0 {
				v := *in.SectorID
				after.SectorID = &v
			} else {
				after.SectorID = nil
			}
		}

		if err := assets.Update(ctx, after); err != nil {
			return domain.Storage("update asset", err)
		}
		names, err := sectors.Names(ctx)
		if err != nil {
			return domain.Storage("load sectors", err)
		}
		details := changelog.DiffFields(before, after, names, changelog.QuickUpdateFields...)
		after.SectorName = changelog.SectorNames(names).Label(after.SectorID)
		return appendEntry(ctx, history, id, entity.ActionQuickUpdate, details, actor)
	})
	if err != nil {
		uc.metrics.MutationFailed("quick_update")
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionQuickUpdate, 1)
	out := toAssetResponse(after)
	return &out, nil
}

// Delete elimina los patrimonios (el histórico se va en cascada) y después del Commit
// borra sus notas fiscales del disco. Devuelve la cantidad eliminada.
func (uc *UseCase) Delete(ctx context.Context, ids []int64) (int64, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return 0, domain.Invalid("Nenhum ID de item foi fornecido.")
	}

	var (
		refs    []string
		deleted int64
	)
	err := uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.SectorRepository,
		_ repository.HistoryRepository,
	) error {
		var err error
		refs, err = assets.InvoiceRefs(ctx, ids)
		if err != nil {
			return domain.Storage("load invoice refs", err)
		}
		deleted, err = assets.DeleteMany(ctx, ids)
		if err != nil {
			return domain.Storage("delete assets", err)
		}
		return nil
	})
	if err != nil {
		uc.metrics.MutationFailed("delete")
		return 0, err
	}
	for _, ref := range refs {
		r := ref
		uc.discard(ctx, &r)
	}
	return deleted, nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

// Get devuelve un patrimonio por ID.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.AssetResponse, error) {
	a, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("get asset", err)
	}
	if a == nil {
		return nil, domain.NotFound(resourceAsset, id)
	}
	out := toAssetResponse(a)
	return &out, nil
}

// GetByTag busca por etiqueta exacta.
func (uc *UseCase) GetByTag(ctx context.Context, tag string) (*dto.AssetResponse, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, domain.Invalid("Patrimônio é obrigatório.")
	}
	a, err := uc.assets.GetByTag(ctx, tag)
	if err != nil {
		return nil, domain.Storage("get asset by tag", err)
	}
	if a == nil {
		return nil, domain.NotFound(resourceAsset, tag)
	}
	out := toAssetResponse(a)
	return &out, nil
}

// List listado paginado con búsqueda libre o por campo.
func (uc *UseCase) List(ctx context.Context, q dto.AssetListQuery) (*dto.AssetListResponse, error) {
	page := dto.PageRequest{Page: q.Page}
	limit, offset := page.Normalize()
	items, total, err := uc.assets.List(ctx, toFilter(q), limit, offset)
	if err != nil {
		return nil, domain.Storage("list assets", err)
	}
	return &dto.AssetListResponse{
		Items:      toAssetResponses(items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: page.TotalPages(total),
	}, nil
}

// SimpleSearch búsqueda rápida por etiqueta o nombre.
func (uc *UseCase) SimpleSearch(ctx context.Context, term string) ([]dto.AssetResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.AssetResponse{}, nil
	}
	items, err := uc.assets.SimpleSearch(ctx, term, simpleSearchLimit)
	if err != nil {
		return nil, domain.Storage("search assets", err)
	}
	return toAssetResponses(items), nil
}

// NextTag sugiere la próxima etiqueta numérica.
func (uc *UseCase) NextTag(ctx context.Context) (*dto.NextTagResponse, error) {
	highest, err := uc.assets.MaxNumericTag(ctx)
	if err != nil {
		return nil, domain.Storage("max tag", err)
	}
	return &dto.NextTagResponse{NextTag: strconv.FormatInt(highest+1, 10)}, nil
}

// History histórico del patrimonio, más reciente primero.
func (uc *UseCase) History(ctx context.Context, id int64) ([]dto.HistoryResponse, error) {
	a, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("get asset", err)
	}
	if a == nil {
		return nil, domain.NotFound(resourceAsset, id)
	}
	entries, err := uc.history.ListByAsset(ctx, id)
	if err != nil {
		return nil, domain.Storage("list history", err)
	}
	out := make([]dto.HistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryResponse{
			ID: e.ID, AssetID: e.AssetID, Action: e.Action, Details: e.Details, Actor: e.Actor, Timestamp: e.Timestamp,
		})
	}
	return out, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func validateAsset(in dto.AssetRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Tag) == "" || in.SectorID <= 0 {
		return domain.Invalid("Os campos Nome, Patrimônio e Setor são obrigatórios.")
	}
	return validateUnitValue(money.Normalize(in.UnitValue))
}

// validateUnitValue rechaza negativos y valores que no caben en valor_unitario.
func validateUnitValue(v decimal.Decimal) error {
	if !money.Fits(v, money.UnitValuePrecision) {
		return domain.Invalid("Valor unitário inválido: deve estar entre R$ 0,00 e %s.",
			money.FormatBRL(money.Max(money.UnitValuePrecision)))
	}
	return nil
}

func fromRequest(in dto.AssetRequest) *entity.Asset {
	sector := in.SectorID
	return &entity.Asset{
		Name:             strings.TrimSpace(in.Name),
		Tag:              strings.TrimSpace(in.Tag),
		SectorID:         &sector,
		ResponsibleName:  strings.TrimSpace(in.ResponsibleName),
		ResponsibleEmail: strings.TrimSpace(in.ResponsibleEmail),
		UnitValue:        money.Normalize(in.UnitValue),
		InvoiceNumber:    strings.TrimSpace(in.InvoiceNumber),
		Brand:            strings.TrimSpace(in.Brand),
		Model:            strings.TrimSpace(in.Model),
		SerialNumber:     strings.TrimSpace(in.SerialNumber),
		AcquisitionDate:  strings.TrimSpace(in.AcquisitionDate),
		Supplier:         strings.TrimSpace(in.Supplier),
		Warranty:         strings.TrimSpace(in.Warranty),
		Status:           strings.TrimSpace(in.Status),
		Notes:            strings.TrimSpace(in.Notes),
	}
}

func toFilter(q dto.AssetListQuery) entity.AssetFilter {
	return entity.AssetFilter{
		Search: strings.TrimSpace(q.Search),
		Field:  q.Field,
		Term:   strings.TrimSpace(q.Term),
	}
}

func appendEntry(ctx context.Context, history repository.HistoryRepository, assetID int64, action, details, actor string) error {
	err := history.Append(ctx, &entity.HistoryEntry{
		AssetID: assetID,
		Action:  action,
		Details: details,
		Actor:   actor,
	})
	return domain.Storage("append history", err)
}

// discard borra un archivo sin propagar el error: la mutación ya quedó resuelta.
func (uc *UseCase) discard(ctx context.Context, ref *string) {
	if ref == nil || *ref == "" || uc.files == nil {
		return
	}
	if err := uc.files.Remove(ctx, *ref); err != nil {
		uc.log.Warn().Err(err).Str("ref", *ref).Msg("no se pudo eliminar el archivo")
	}
}
