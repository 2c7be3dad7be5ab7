package changelog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

var sectors = changelog.SectorNames{1: "Suporte", 2: "Estoque"}

func baseAsset() *entity.Asset {
	return &entity.Asset{
		ID:              10,
		Name:            "Notebook",
		Tag:             "1001",
		SectorID:        ptr(int64(1)),
		ResponsibleName: "Ana",
		UnitValue:       decimal.RequireFromString("1500.00"),
		Status:          entity.AssetStatusInUse,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Diff
// ──────────────────────────────────────────────────────────────────────────────

func TestDiff_SinCambios_DevuelveSentinela(t *testing.T) {
	a := baseAsset()
	assert.Equal(t, changelog.NoChanges, changelog.Diff(a, a.Clone(), sectors))
}

func TestDiff_SectorYResponsable(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.SectorID = ptr(int64(2))
	after.ResponsibleName = "Bruno"

	got := changelog.Diff(before, after, sectors)
	assert.Equal(t, `Setor: de "Suporte" para "Estoque"; Responsável: de "Ana" para "Bruno"`, got)
}

func TestDiff_ValorEquivalenteNoEsCambio(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.UnitValue = decimal.NewFromInt(1500)
	assert.Equal(t, changelog.NoChanges, changelog.Diff(before, after, sectors),
		"1500 y 1500.00 deben compararse iguales")
}

func TestDiff_ValorSeFormateaEnReales(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.UnitValue = decimal.RequireFromString("2345.6")
	assert.Equal(t, `Valor: de "R$ 1.500,00" para "R$ 2.345,60"`, changelog.Diff(before, after, sectors))
}

func TestDiff_EspaciosNoCuentan(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.Name = "  Notebook "
	assert.Equal(t, changelog.NoChanges, changelog.Diff(before, after, sectors))
}

func TestDiff_SectorDesconocidoYNulo(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.SectorID = ptr(int64(99))
	assert.Equal(t, `Setor: de "Suporte" para "ID 99"`, changelog.Diff(before, after, sectors))

	after.SectorID = nil
	assert.Equal(t, `Setor: de "Suporte" para ""`, changelog.Diff(before, after, sectors))
}

func TestDiff_OrdenDeLaTabla(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.Notes = "tela trincada"
	after.Name = "Notebook Dell"
	after.Status = entity.AssetStatusDamaged

	got := changelog.Diff(before, after, sectors)
	assert.Equal(t,
		`Item: de "Notebook" para "Notebook Dell"; Status: de "Em Uso" para "Danificado"; Observação: de "" para "tela trincada"`,
		got)
}

func TestDiff_Deterministico(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.Brand = "Dell"
	after.Model = "Latitude"
	first := changelog.Diff(before, after, sectors)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, changelog.Diff(before, after, sectors))
	}
}

func TestDiffFields_IgnoraCamposNoSeleccionados(t *testing.T) {
	before := baseAsset()
	after := before.Clone()
	after.Name = "Outro nome"
	after.ResponsibleEmail = "ana@empresa.com"

	got := changelog.DiffFields(before, after, sectors, changelog.QuickUpdateFields...)
	assert.Equal(t, `E-mail do Responsável: de "" para "ana@empresa.com"`, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Frases de acción
// ──────────────────────────────────────────────────────────────────────────────

func TestCreated(t *testing.T) {
	assert.Equal(t, "Item 'Monitor' (Patrimônio: 2002) foi criado.", changelog.Created("Monitor", "2002"))
}

func TestBulk(t *testing.T) {
	assert.Equal(t, "Setor alterado para 'Estoque'", changelog.Bulk(entity.ChangeSector{SectorID: 2}, sectors))
	assert.Equal(t, "Setor alterado para 'ID 7'", changelog.Bulk(entity.ChangeSector{SectorID: 7}, sectors))
	assert.Equal(t, "Status alterado para 'Descartado'", changelog.Bulk(entity.ChangeStatus{Status: "Descartado"}, sectors))
	assert.Equal(t, "Responsável atribuído: 'Carla'", changelog.Bulk(entity.AssignResponsible{Name: "Carla"}, sectors))
	assert.Equal(t, "Responsável atribuído: 'Nenhum'", changelog.Bulk(entity.AssignResponsible{}, sectors))
}

func TestMaintenancePhrases(t *testing.T) {
	assert.Equal(t, "Item enviado para reparo. Motivo: não liga", changelog.MaintenanceOpened("não liga"))
	assert.Equal(t,
		"Manutenção atualizada. Status: Concluído. Novo status do item: Em Uso",
		changelog.MaintenanceUpdated(entity.MaintenanceCompleted, entity.AssetStatusInUse))
}
