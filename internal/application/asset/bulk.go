package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// BulkUseCase aplica una acción homogénea a varios patrimonios en una sola transacción.
type BulkUseCase struct {
	tx      TxRunner
	metrics ports.MetricsRecorder
}

// NewBulkUseCase construye el caso de uso.
func NewBulkUseCase(tx TxRunner, metrics ports.MetricsRecorder) *BulkUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &BulkUseCase{tx: tx, metrics: metrics}
}

// Apply valida la acción, actualiza todas las filas con una sentencia y escribe una entrada
// ATUALIZAÇÃO EM LOTE por id. Cualquier fallo revierte todo. Devuelve filas afectadas.
func (uc *BulkUseCase) Apply(ctx context.Context, ids []int64, action entity.BulkAction, actor string) (int64, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return 0, domain.Invalid("Nenhum ID de item foi fornecido.")
	}
	if err := validateBulkAction(action); err != nil {
		return 0, err
	}

	var affected, written int64
	err := uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		sectors repository.SectorRepository,
		history repository.HistoryRepository,
	) error {
		// El nombre del sector se resuelve antes de escribir.
		names := changelog.SectorNames{}
		if cs, ok := action.(entity.ChangeSector); ok {
			s, err := sectors.GetByID(ctx, cs.SectorID)
			if err != nil {
				return domain.Storage("load sector", err)
			}
			if s != nil {
				names[s.ID] = s.Name
			}
		}
		details := changelog.Bulk(action, names)

		var err error
		affected, err = assets.ApplyBulk(ctx, ids, action)
		if err != nil {
			return domain.Storage("bulk update", err)
		}
		written, err = history.AppendForAssets(ctx, ids, entity.ActionBulkUpdate, details, actor)
		if err != nil {
			return domain.Storage("append bulk history", err)
		}
		return nil
	})
	if err != nil {
		uc.metrics.MutationFailed("bulk_" + action.Kind())
		return 0, err
	}
	uc.metrics.HistoryWritten(entity.ActionBulkUpdate, written)
	return affected, nil
}

func validateBulkAction(action entity.BulkAction) error {
	switch a := action.(type) {
	case entity.ChangeSector:
		if a.SectorID <= 0 {
			return domain.Invalid("Setor inválido para a ação em lote.")
		}
	case entity.ChangeStatus:
		if strings.TrimSpace(a.Status) == "" {
			return domain.Invalid("Status é obrigatório para a ação em lote.")
		}
	case entity.AssignResponsible:
	case nil:
		return domain.Invalid("Ação em lote é obrigatória.")
	default:
		return domain.Invalid("Ação em lote inválida.")
	}
	return nil
}

// ParseBulkAction convierte el par (action, value) de la API en una BulkAction.
// change_sector acepta número o texto numérico; assign_responsible acepta {name, email} o un texto.
func ParseBulkAction(action string, value json.RawMessage) (entity.BulkAction, error) {
	switch action {
	case entity.BulkChangeSector:
		id, err := parseSectorValue(value)
		if err != nil || id <= 0 {
			return nil, domain.Invalid("Valor inválido para change_sector.")
		}
		return entity.ChangeSector{SectorID: id}, nil

	case entity.BulkChangeStatus:
		var status string
		if err := json.Unmarshal(value, &status); err != nil || strings.TrimSpace(status) == "" {
			return nil, domain.Invalid("Valor inválido para change_status.")
		}
		return entity.ChangeStatus{Status: strings.TrimSpace(status)}, nil

	case entity.BulkAssignResponsible:
		var obj struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		// Para vaciar el responsable se envía {"name":"","email":""} explícito.
		if v := bytes.TrimSpace(value); len(v) == 0 || string(v) == "null" {
			return nil, domain.Invalid("Valor é obrigatório para assign_responsible.")
		}
		if err := json.Unmarshal(value, &obj); err != nil {
			var name string
			if err := json.Unmarshal(value, &name); err != nil {
				return nil, domain.Invalid("Valor inválido para assign_responsible.")
			}
			obj.Name = name
		}
		return entity.AssignResponsible{
			Name:  strings.TrimSpace(obj.Name),
			Email: strings.TrimSpace(obj.Email),
		}, nil

	default:
		return nil, domain.Invalid("Ação em lote desconhecida: %s", action)
	}
}

func parseSectorValue(value json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(value, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// dedupeIDs elimina duplicados e ids no positivos conservando el orden.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
