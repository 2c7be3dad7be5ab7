// Package analytics contiene los casos de uso del panel de patrimonio.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

const dashboardTopGroups = 10 // barras por gráfico

// DashboardUseCase genera el resumen del inventario patrimonial.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. Totals                    → TotalItems + TotalValue
//  2. GroupBy(setor, top 10)    → BySector
//  3. GroupBy(nome, top 10)     → ByName
//  4. GroupBy(valor_por_nome)   → ValueByName
//  5. CountByStatus             → ByStatus
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		count int64
		value decimal.Decimal
		err   error
	}
	type groupResult struct {
		rows []repository.GroupRow
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	sectorCh := make(chan groupResult, 1)
	nameCh := make(chan groupResult, 1)
	valueCh := make(chan groupResult, 1)
	statusCh := make(chan groupResult, 1)

	go func() {
		count, value, err := uc.repo.Totals(ctx)
		totalsCh <- totalsResult{count, value, err}
	}()
	group := func(ch chan<- groupResult, dimension string) {
		rows, err := uc.repo.GroupBy(ctx, dimension, dashboardTopGroups)
		ch <- groupResult{rows, err}
	}
	go group(sectorCh, repository.GroupBySector)
	go group(nameCh, repository.GroupByName)
	go group(valueCh, repository.GroupByValueName)
	go func() {
		rows, err := uc.repo.CountByStatus(ctx)
		statusCh <- groupResult{rows, err}
	}()

	totals := <-totalsCh
	bySector := <-sectorCh
	byName := <-nameCh
	byValue := <-valueCh
	byStatus := <-statusCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	for label, r := range map[string]groupResult{
		"por setor": bySector, "por nome": byName, "valor por nome": byValue, "por status": byStatus,
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", label, r.err)
		}
	}

	total := totals.value.Round(money.Scale)
	return &dto.DashboardSummaryDTO{
		TotalItems:      totals.count,
		TotalValue:      total,
		TotalValueLabel: money.FormatBRL(total),
		BySector:        toGroups(bySector.rows),
		ByName:          toGroups(byName.rows),
		ValueByName:     toGroups(byValue.rows),
		ByStatus:        toGroups(byStatus.rows),
	}, nil
}

func toGroups(rows []repository.GroupRow) []dto.GroupDTO {
	out := make([]dto.GroupDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.GroupDTO{Label: r.Label, Count: r.Count, Value: r.Value.Round(money.Scale)})
	}
	return out
}
