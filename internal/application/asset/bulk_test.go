package asset_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/application/asset"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

func newBulkFixture() (*memStore, *fakeTx, *fakeMetrics, *asset.BulkUseCase) {
	store := newMemStore()
	tx := &fakeTx{store: store}
	metrics := newFakeMetrics()
	return store, tx, metrics, asset.NewBulkUseCase(tx, metrics)
}

func seedThree(s *memStore) []int64 {
	var ids []int64
	for _, tag := range []string{"1", "2", "3"} {
		a := s.seed(&entity.Asset{Name: "Item " + tag, Tag: tag, SectorID: ptr(int64(1)), Status: entity.AssetStatusInUse})
		ids = append(ids, a.ID)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestBulk_ChangeSector_UnaEntradaPorID(t *testing.T) {
	store, _, metrics, uc := newBulkFixture()
	ids := seedThree(store)

	n, err := uc.Apply(context.Background(), ids, entity.ChangeSector{SectorID: 2}, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	for _, id := range ids {
		assert.Equal(t, int64(2), *store.assets[id].SectorID)
		entries := store.historyFor(id)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.ActionBulkUpdate, entries[0].Action)
		assert.Equal(t, "Setor alterado para 'Estoque'", entries[0].Details)
	}
	assert.Equal(t, int64(3), metrics.written[entity.ActionBulkUpdate])
}

func TestBulk_ChangeSector_SectorDesconocidoUsaID(t *testing.T) {
	store, _, _, uc := newBulkFixture()
	ids := seedThree(store)

	_, err := uc.Apply(context.Background(), ids[:1], entity.ChangeSector{SectorID: 77}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Setor alterado para 'ID 77'", store.historyFor(ids[0])[0].Details)
}

func TestBulk_AssignResponsible_Vacio(t *testing.T) {
	store, _, _, uc := newBulkFixture()
	ids := seedThree(store)

	_, err := uc.Apply(context.Background(), ids, entity.AssignResponsible{}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Responsável atribuído: 'Nenhum'", store.historyFor(ids[2])[0].Details)
}

func TestBulk_IDsDuplicados(t *testing.T) {
	store, _, _, uc := newBulkFixture()
	ids := seedThree(store)

	n, err := uc.Apply(context.Background(), []int64{ids[0], ids[0], ids[1]}, entity.ChangeStatus{Status: "Danificado"}, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, store.historyFor(ids[0]), 1, "un id repetido genera una sola entrada")
}

func TestBulk_IDInexistente_RevierteTodo(t *testing.T) {
	store, tx, metrics, uc := newBulkFixture()
	ids := seedThree(store)
	store.missingForBulk = 99

	_, err := uc.Apply(context.Background(), append(ids, 99), entity.ChangeStatus{Status: "Descartado"}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 1, tx.rollbacks)
	for _, id := range ids {
		assert.Equal(t, entity.AssetStatusInUse, store.assets[id].Status, "ninguna fila debe quedar modificada")
		assert.Empty(t, store.historyFor(id))
	}
	assert.Equal(t, []string{"bulk_change_status"}, metrics.failed)
}

func TestBulk_Validaciones(t *testing.T) {
	store, tx, _, uc := newBulkFixture()
	ids := seedThree(store)

	_, err := uc.Apply(context.Background(), nil, entity.ChangeStatus{Status: "x"}, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(context.Background(), ids, entity.ChangeStatus{Status: "  "}, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(context.Background(), ids, entity.ChangeSector{}, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(context.Background(), ids, nil, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, tx.commits+tx.rollbacks, "las validaciones ocurren antes de la transacción")
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseBulkAction
// ──────────────────────────────────────────────────────────────────────────────

func TestParseBulkAction(t *testing.T) {
	a, err := asset.ParseBulkAction("change_sector", json.RawMessage(`3`))
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeSector{SectorID: 3}, a)

	a, err = asset.ParseBulkAction("change_sector", json.RawMessage(`"4"`))
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeSector{SectorID: 4}, a)

	a, err = asset.ParseBulkAction("change_status", json.RawMessage(`"Em Estoque"`))
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeStatus{Status: "Em Estoque"}, a)

	a, err = asset.ParseBulkAction("assign_responsible", json.RawMessage(`{"name":"Carla","email":"c@x.com"}`))
	require.NoError(t, err)
	assert.Equal(t, entity.AssignResponsible{Name: "Carla", Email: "c@x.com"}, a)

	a, err = asset.ParseBulkAction("assign_responsible", json.RawMessage(`{"name":"","email":""}`))
	require.NoError(t, err)
	assert.Equal(t, entity.AssignResponsible{}, a, "un objeto vacío explícito limpia el responsable")
}

func TestParseBulkAction_Invalida(t *testing.T) {
	_, err := asset.ParseBulkAction("rename", json.RawMessage(`"x"`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = asset.ParseBulkAction("change_sector", json.RawMessage(`"abc"`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = asset.ParseBulkAction("change_status", json.RawMessage(`""`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseBulkAction_AssignResponsibleSinValor(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(`  `)} {
		a, err := asset.ParseBulkAction("assign_responsible", raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor %q", string(raw))
		assert.Nil(t, a)
	}
}
