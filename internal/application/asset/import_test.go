package asset_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

func TestImport_PuntoYComa_CreaSectoresYHaceUpsert(t *testing.T) {
	f := newFixture()
	existing := seedNotebook(f.store)

	csv := "\xef\xbb\xbfEtiqueta;Descrição;Localização;Usado por;Valor (R$);Status\n" +
		"1001;Notebook Dell 5480;Suporte;Carla;R$ 4.100,50;Em Uso\n" +
		"2001;Cadeira;Financeiro;;150;Em Estoque\n" +
		";sem etiqueta;Suporte;;;\n" +
		"2002;Mesa;;;;\n"

	out, err := f.uc.Import(context.Background(), strings.NewReader(csv), actor)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Inserted)
	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, 1, out.Skipped)

	updated := f.store.assets[existing.ID]
	assert.Equal(t, "Notebook Dell 5480", updated.Name)
	assert.Equal(t, "4100.50", updated.UnitValue.StringFixed(2))

	var financeiro int64
	for id, name := range f.store.sectors {
		if name == "Financeiro" {
			financeiro = id
		}
	}
	require.NotZero(t, financeiro, "el sector desconocido debe crearse")

	mesa, _ := (&memAssets{s: f.store}).GetByTag(context.Background(), "2002")
	require.NotNil(t, mesa)
	assert.Equal(t, "Estoque", mesa.SectorName, "sin sector se usa Estoque")

	assert.Equal(t, int64(3), f.metrics.written[entity.ActionImport])
}

func TestImport_Coma(t *testing.T) {
	f := newFixture()
	csv := "patrimonio,nome,setor,valor\n3001,Projetor,Comercial,\"1,299.90\"\n"

	out, err := f.uc.Import(context.Background(), strings.NewReader(csv), actor)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Inserted)

	a, _ := (&memAssets{s: f.store}).GetByTag(context.Background(), "3001")
	require.NotNil(t, a)
	assert.Equal(t, "1299.90", a.UnitValue.StringFixed(2))
}

func TestImport_FallaHistorico_NoDejaNada(t *testing.T) {
	f := newFixture()
	f.store.failAppend = true
	csv := "patrimonio;nome\n1;A\n2;B\n"

	_, err := f.uc.Import(context.Background(), strings.NewReader(csv), actor)
	require.Error(t, err)
	assert.Empty(t, f.store.assets)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestImport_ValorInvalido_AbortaConLinea(t *testing.T) {
	f := newFixture()
	csv := "patrimonio;nome;valor\n4001;Cadeira;150\n4002;Mesa;-80,00\n"

	_, err := f.uc.Import(context.Background(), strings.NewReader(csv), actor)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Linha 3")
	assert.Empty(t, f.store.assets, "la importación es atómica")
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestImport_ArchivoVacio(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Import(context.Background(), strings.NewReader("  \n"), actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCSV_ReimportableSinCambios(t *testing.T) {
	f := newFixture()
	seedNotebook(f.store)

	var buf bytes.Buffer
	require.NoError(t, f.uc.ExportCSV(context.Background(), dto.AssetListQuery{}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "patrimonio;nome;setor;responsavel;valor;nota fiscal;marca;modelo;data de compra;fornecedor;status;observacao", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1001;Notebook Dell;Suporte;Ana;3500.00;"))

	out, err := f.uc.Import(context.Background(), strings.NewReader(buf.String()), actor)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Updated)
}
