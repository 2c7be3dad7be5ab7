package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/postgres"
)

var assetCols = []string{
	"id", "nome", "patrimonio", "setor_id", "setor_nome", "responsavel_nome", "responsavel_email",
	"valor_unitario", "nota_fiscal", "nota_fiscal_url", "marca", "modelo", "numero_serie",
	"data_aquisicao", "fornecedor", "garantia", "status", "observacao", "cadastrado_em", "atualizado_em",
}

func ptr[T any](v T) *T { return &v }

// anyArgs n comodines para inserts con muchas columnas.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func notebookRow(rows *pgxmock.Rows) *pgxmock.Rows {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return rows.AddRow(
		int64(1), "Notebook Dell", "1001", ptr(int64(2)), "Suporte", "Ana", "ana@empresa.com",
		decimal.RequireFromString("3500.00"), "NF-77", (*string)(nil), "Dell", "Latitude", "SN1",
		"2024-01-10", "Loja X", "12 meses", "Em Uso", "", now, now,
	)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_CommitConReposAtadosALaTx(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF p`).WithArgs(int64(1)).WillReturnRows(notebookRow(pgxmock.NewRows(assetCols)))
	mock.ExpectExec(`UPDATE patrimonio SET status`).WithArgs(int64(1), "Danificado").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	runner := postgres.NewTxRunner(mock)
	err := runner.Run(context.Background(), func(
		assets repository.AssetRepository,
		_ repository.SectorRepository,
		_ repository.HistoryRepository,
	) error {
		a, err := assets.GetForUpdate(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, "Suporte", a.SectorName)
		assert.Equal(t, int64(2), *a.SectorID)
		assert.Nil(t, a.InvoiceRef)
		return assets.SetStatus(context.Background(), 1, "Danificado")
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackSiFnFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	runner := postgres.NewTxRunner(mock)
	err := runner.RunMaintenance(context.Background(), func(
		repository.MaintenanceRepository, repository.AssetRepository, repository.HistoryRepository,
	) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_FallasDeBeginYCommitSonStorage(t *testing.T) {
	noop := func(repository.AssetRepository, repository.SectorRepository, repository.HistoryRepository) error { return nil }

	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
	err := postgres.NewTxRunner(mock).Run(context.Background(), noop)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "too many connections")

	mock = newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	mock.ExpectRollback()
	err = postgres.NewTxRunner(mock).Run(context.Background(), noop)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "commit transaction")

	mock = newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	mock.ExpectRollback()
	err = postgres.NewTxRunner(mock).RunMaintenance(context.Background(), func(
		repository.MaintenanceRepository, repository.AssetRepository, repository.HistoryRepository,
	) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

// ──────────────────────────────────────────────────────────────────────────────
// AssetRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM patrimonio p LEFT JOIN setores s`).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)

	a, err := postgres.NewAssetRepository(mock).GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestAssetRepo_ApplyBulk(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE patrimonio SET setor_id`).WithArgs([]int64{1, 2}, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec(`UPDATE patrimonio SET responsavel_nome`).WithArgs([]int64{1}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := postgres.NewAssetRepository(mock)
	n, err := repo.ApplyBulk(context.Background(), []int64{1, 2}, entity.ChangeSector{SectorID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.ApplyBulk(context.Background(), []int64{1}, entity.AssignResponsible{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepo_Create_EtiquetaDuplicada(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO patrimonio`).WithArgs(anyArgs(16)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "patrimonio_patrimonio_key"})

	_, err := postgres.NewAssetRepository(mock).Create(context.Background(), &entity.Asset{Name: "X", Tag: "1001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Conflito de dados: o valor 'patrimonio_patrimonio_key' já existe.", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepo_List_FiltroPorCampo(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM patrimonio p`).WithArgs("%Ana%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(16))
	mock.ExpectQuery(`WHERE p.responsavel_nome ILIKE`).WithArgs("%Ana%", 15, 15).
		WillReturnRows(notebookRow(pgxmock.NewRows(assetCols)))

	items, total, err := postgres.NewAssetRepository(mock).List(context.Background(),
		entity.AssetFilter{Field: entity.FilterFieldResponsible, Term: "Ana"}, 15, 15)
	require.NoError(t, err)
	assert.Equal(t, 16, total)
	require.Len(t, items, 1)
	assert.Equal(t, "1001", items[0].Tag)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepo_Upsert(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`ON CONFLICT \(patrimonio\) DO UPDATE`).WithArgs(anyArgs(12)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inserted"}).AddRow(int64(5), false))

	id, inserted, err := postgres.NewAssetRepository(mock).Upsert(context.Background(),
		&entity.Asset{Name: "Mesa", Tag: "2002", SectorID: ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ──────────────────────────────────────────────────────────────────────────────
// HistoryRepo / SectorRepo / MaintenanceRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestHistoryRepo_AppendForAssets_FKInvalida(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO historico`).
		WithArgs([]int64{1, 99}, entity.ActionBulkUpdate, "Status alterado para 'Danificado'", "admin").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "historico_patrimonio_id_fkey"})

	_, err := postgres.NewHistoryRepository(mock).AppendForAssets(context.Background(),
		[]int64{1, 99}, entity.ActionBulkUpdate, "Status alterado para 'Danificado'", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryRepo_ListByAsset(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM historico`).WithArgs(int64(1)).WillReturnRows(
		pgxmock.NewRows([]string{"id", "patrimonio_id", "acao", "detalhes", "utilizador", "timestamp"}).
			AddRow(int64(2), int64(1), entity.ActionUpdate, "Status: de \"Em Uso\" para \"Danificado\"", "admin", ts).
			AddRow(int64(1), int64(1), entity.ActionCreation, "Item 'X' (Patrimônio: 1) foi criado.", "admin", ts.Add(-time.Hour)),
	)

	list, err := postgres.NewHistoryRepository(mock).ListByAsset(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.ActionUpdate, list[0].Action)
}

func TestSectorRepo_CreateDuplicado(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO setores`).WithArgs("suporte").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_setores_nome_lower"})

	_, err := postgres.NewSectorRepository(mock).Create(context.Background(), "suporte")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSectorRepo_Names(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, nome FROM setores`).WillReturnRows(
		pgxmock.NewRows([]string{"id", "nome"}).AddRow(int64(1), "Suporte").AddRow(int64(2), "Estoque"))

	names, err := postgres.NewSectorRepository(mock).Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Suporte", 2: "Estoque"}, names)
}

func TestMaintenanceRepo_ListByAsset(t *testing.T) {
	mock := newMock(t)
	sent := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cost := decimal.RequireFromString("120.00")
	mock.ExpectQuery(`FROM manutencoes WHERE patrimonio_id`).WithArgs(int64(1)).WillReturnRows(
		pgxmock.NewRows([]string{"id", "patrimonio_id", "data_envio", "data_retorno", "problema_relatado",
			"fornecedor_servico", "custo", "status_manutencao", "observacoes", "criado_em"}).
			AddRow(int64(3), int64(1), sent, (*time.Time)(nil), "Tela", "TecFix", &cost, entity.MaintenanceSent, "", sent),
	)

	list, err := postgres.NewMaintenanceRepository(mock).ListByAsset(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ReturnedAt)
	require.NotNil(t, list[0].Cost)
	assert.True(t, cost.Equal(*list[0].Cost))
}

func TestMaintenanceRepo_DeleteInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM manutencoes`).WithArgs(int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ok, err := postgres.NewMaintenanceRepository(mock).Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardRepo_DimensionDesconocida(t *testing.T) {
	mock := newMock(t)
	_, err := postgres.NewDashboardRepository(mock).GroupBy(context.Background(), "marca", 10)
	assert.Error(t, err)
}
