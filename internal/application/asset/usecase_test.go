package asset_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/application/asset"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

const actor = "admin"

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store   *memStore
	tx      *fakeTx
	files   *fakeFiles
	metrics *fakeMetrics
	uc      *asset.UseCase
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &fakeTx{store: store}
	files := &fakeFiles{}
	metrics := newFakeMetrics()
	uc := asset.NewUseCase(tx, &memAssets{s: store}, &memHistory{s: store}, files, metrics, zerolog.Nop())
	return &fixture{store: store, tx: tx, files: files, metrics: metrics, uc: uc}
}

func validRequest() dto.AssetRequest {
	return dto.AssetRequest{
		Name:            "Notebook Dell",
		Tag:             "1001",
		SectorID:        1,
		ResponsibleName: "Ana",
		UnitValue:       "R$ 3.500,00",
		Status:          entity.AssetStatusInUse,
	}
}

func seedNotebook(s *memStore) *entity.Asset {
	return s.seed(&entity.Asset{
		Name:            "Notebook Dell",
		Tag:             "1001",
		SectorID:        ptr(int64(1)),
		ResponsibleName: "Ana",
		UnitValue:       decimal.RequireFromString("3500.00"),
		Status:          entity.AssetStatusInUse,
		InvoiceRef:      ptr("/uploads/notas_fiscais/old.pdf"),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RegistraCriacao(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), validRequest(), nil, actor)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("3500").Equal(out.UnitValue), "el valor debe normalizarse")
	entries := f.store.historyFor(out.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionCreation, entries[0].Action)
	assert.Equal(t, "Item 'Notebook Dell' (Patrimônio: 1001) foi criado.", entries[0].Details)
	assert.Equal(t, actor, entries[0].Actor)
	assert.Equal(t, int64(1), f.metrics.written[entity.ActionCreation])
}

func TestCreate_CamposObligatorios(t *testing.T) {
	f := newFixture()
	in := validRequest()
	in.SectorID = 0

	_, err := f.uc.Create(context.Background(), in, ptr("/uploads/notas_fiscais/new.pdf"), actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.assets)
	assert.Equal(t, []string{"/uploads/notas_fiscais/new.pdf"}, f.files.removed,
		"la nota recién subida debe eliminarse si la validación falla")
}

func TestCreate_ValorUnitarioFueraDeRango(t *testing.T) {
	for _, v := range []string{"-150,00", "R$ -1.234,56", "10.000.000.000,00"} {
		f := newFixture()
		in := validRequest()
		in.UnitValue = v

		_, err := f.uc.Create(context.Background(), in, nil, actor)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor %q", v)
		assert.Empty(t, f.store.assets)
	}

	f := newFixture()
	in := validRequest()
	in.UnitValue = "9.999.999.999,99"
	_, err := f.uc.Create(context.Background(), in, nil, actor)
	assert.NoError(t, err, "el máximo de NUMERIC(12,2) es válido")
}

func TestCreate_FallaHistorico_RevierteTodo(t *testing.T) {
	f := newFixture()
	f.store.failAppend = true

	_, err := f.uc.Create(context.Background(), validRequest(), ptr("/uploads/notas_fiscais/new.pdf"), actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, f.store.assets, "sin histórico no debe quedar el patrimonio")
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Contains(t, f.files.removed, "/uploads/notas_fiscais/new.pdf")
	assert.Equal(t, []string{"create"}, f.metrics.failed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_DiffDeSectorYResponsable(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)

	in := validRequest()
	in.SectorID = 2
	in.ResponsibleName = "Bruno"
	out, err := f.uc.Update(context.Background(), a.ID, in, nil, actor)
	require.NoError(t, err)
	assert.Equal(t, "Estoque", out.SectorName)

	entries := f.store.historyFor(a.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionUpdate, entries[0].Action)
	assert.Equal(t, `Setor: de "Suporte" para "Estoque"; Responsável: de "Ana" para "Bruno"`, entries[0].Details)
	assert.Empty(t, f.files.removed, "sin cambio de nota no se borra nada")
	assert.Equal(t, "/uploads/notas_fiscais/old.pdf", *f.store.assets[a.ID].InvoiceRef)
}

func TestUpdate_PayloadIdentico_RegistraSentinela(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)

	_, err := f.uc.Update(context.Background(), a.ID, validRequest(), nil, actor)
	require.NoError(t, err)

	entries := f.store.historyFor(a.ID)
	require.Len(t, entries, 1, "debe registrarse exactamente una entrada")
	assert.Equal(t, changelog.NoChanges, entries[0].Details)

	// Repetir el mismo payload vuelve a dejar una entrada.
	_, err = f.uc.Update(context.Background(), a.ID, validRequest(), nil, actor)
	require.NoError(t, err)

	entries = f.store.historyFor(a.ID)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, changelog.NoChanges, e.Details)
	}
}

func TestUpdate_ValorNegativo(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)
	in := validRequest()
	in.UnitValue = "-1"

	_, err := f.uc.Update(context.Background(), a.ID, in, nil, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "3500.00", f.store.assets[a.ID].UnitValue.StringFixed(2))
	assert.Empty(t, f.store.historyFor(a.ID))
}

func TestUpdate_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Update(context.Background(), 999, validRequest(), ptr("/uploads/notas_fiscais/new.pdf"), actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.history)
	assert.Equal(t, []string{"/uploads/notas_fiscais/new.pdf"}, f.files.removed)
}

func TestUpdate_NuevaNota_BorraLaAnteriorDespuesDelCommit(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)

	_, err := f.uc.Update(context.Background(), a.ID, validRequest(), ptr("/uploads/notas_fiscais/new.pdf"), actor)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/notas_fiscais/new.pdf", *f.store.assets[a.ID].InvoiceRef)
	assert.Equal(t, []string{"/uploads/notas_fiscais/old.pdf"}, f.files.removed)
	assert.Equal(t, 1, f.tx.commits)
}

func TestUpdate_QuitarNota(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)

	in := validRequest()
	in.RemoveInvoice = true
	_, err := f.uc.Update(context.Background(), a.ID, in, nil, actor)
	require.NoError(t, err)
	assert.Nil(t, f.store.assets[a.ID].InvoiceRef)
	assert.Equal(t, []string{"/uploads/notas_fiscais/old.pdf"}, f.files.removed)
}

func TestUpdate_FallaEscritura_ConservaNotaAnterior(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)
	f.store.failUpdate = true

	_, err := f.uc.Update(context.Background(), a.ID, validRequest(), ptr("/uploads/notas_fiscais/new.pdf"), actor)
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, "/uploads/notas_fiscais/old.pdf", *f.store.assets[a.ID].InvoiceRef)
	assert.Equal(t, []string{"/uploads/notas_fiscais/new.pdf"}, f.files.removed,
		"solo la nota nueva se elimina; la anterior sigue referenciada")
	assert.Empty(t, f.store.history)
}

// ──────────────────────────────────────────────────────────────────────────────
// QuickUpdate
// ──────────────────────────────────────────────────────────────────────────────

func TestQuickUpdate_SoloCamposRapidos(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)

	_, err := f.uc.QuickUpdate(context.Background(), a.ID, dto.QuickUpdateRequest{
		ResponsibleEmail: ptr("ana@empresa.com"),
		SectorID:         ptr(int64(3)),
	}, actor)
	require.NoError(t, err)

	entries := f.store.historyFor(a.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionQuickUpdate, entries[0].Action)
	assert.Equal(t, `Setor: de "Suporte" para "Comercial"; E-mail do Responsável: de "" para "ana@empresa.com"`, entries[0].Details)
	assert.Equal(t, "Ana", f.store.assets[a.ID].ResponsibleName, "el nombre no enviado no se toca")
}

func TestQuickUpdate_SinCampos(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)
	_, err := f.uc.QuickUpdate(context.Background(), a.ID, dto.QuickUpdateRequest{}, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.tx.commits+f.tx.rollbacks, "no debe abrirse transacción")
}

func TestQuickUpdate_SectorCeroLimpia(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)
	_, err := f.uc.QuickUpdate(context.Background(), a.ID, dto.QuickUpdateRequest{SectorID: ptr(int64(0))}, actor)
	require.NoError(t, err)
	assert.Nil(t, f.store.assets[a.ID].SectorID)
	assert.Equal(t, `Setor: de "Suporte" para ""`, f.store.historyFor(a.ID)[0].Details)
}

func TestQuickUpdate_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.QuickUpdate(context.Background(), 42, dto.QuickUpdateRequest{ResponsibleName: ptr("x")}, actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BorraArchivosDespuesDelCommit(t *testing.T) {
	f := newFixture()
	a := seedNotebook(f.store)
	b := f.store.seed(&entity.Asset{Name: "Monitor", Tag: "1002"})

	n, err := f.uc.Delete(context.Background(), []int64{a.ID, b.ID, a.ID, 777})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, f.store.assets)
	assert.Equal(t, []string{"/uploads/notas_fiscais/old.pdf"}, f.files.removed)
}

func TestDelete_ListaVacia(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Delete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), validRequest(), nil, actor)
	require.NoError(t, err)
	_, err = f.uc.QuickUpdate(context.Background(), out.ID, dto.QuickUpdateRequest{ResponsibleName: ptr("Bruno")}, "joao")
	require.NoError(t, err)

	list, err := f.uc.History(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.ActionQuickUpdate, list[0].Action)
	assert.Equal(t, "joao", list[0].Actor)
	assert.Equal(t, entity.ActionCreation, list[1].Action)
}

func TestNextTag(t *testing.T) {
	f := newFixture()
	f.store.seed(&entity.Asset{Name: "a", Tag: "0041"})
	f.store.seed(&entity.Asset{Name: "b", Tag: "120"})

	out, err := f.uc.NextTag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "121", out.NextTag)
}

func TestList_Paginado(t *testing.T) {
	f := newFixture()
	for i := 0; i < 20; i++ {
		f.store.seed(&entity.Asset{Name: "Cadeira", Tag: string(rune('A'+i)) + "-tag"})
	}
	out, err := f.uc.List(context.Background(), dto.AssetListQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 20, out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, dto.DefaultPageSize, out.PageSize)
}
