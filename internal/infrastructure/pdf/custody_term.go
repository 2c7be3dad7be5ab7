// Package pdf genera el Término de Recebimento e Responsabilidade de equipos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del término  │  Fecha de emisión            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CEDENTE + RESPONSABLE                                       │
//	│  TABLA: Patrimônio | Item | Marca/Modelo | N° Série | Valor  │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLÁUSULAS + Firma del responsable                          │
//	│  TERMO DE DEVOLUÇÃO + Firma                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var clauses = []string{
	"Em situações de roubo, furto ou extravio deverei informar imediatamente à diretoria e providenciar boletim de ocorrência policial, encaminhando-o ao superior.",
	"Os equipamentos citados são cedidos a título de empréstimo e permanecem de propriedade do cedente.",
	"Em casos de danos, deverei notificar o cedente, que avaliará o dano. Dependendo do dano, farei o reembolso dos valores de conserto e/ou aquisição de novo equipamento.",
	"Em caso de desligamento, os equipamentos deverão ser devolvidos em perfeito estado de conservação, considerando o tempo de uso.",
	"Nenhuma alteração no hardware dos equipamentos poderá ser realizada sem o envolvimento do cedente.",
	"Declaro que estou ciente que o incumprimento do presente Termo poderá gerar as consequências cabíveis.",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.CustodyPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	organization string
}

var _ ports.CustodyPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. organization figura como cedente.
func NewMarotoPDFGenerator(organization string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{organization: nonEmpty(strings.TrimSpace(organization), "A EMPRESA")}
}

// CustodyTerm genera el PDF del término y devuelve sus bytes.
func (g *MarotoPDFGenerator) CustodyTerm(term dto.CustodyTermResponse, issuedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Termo de Responsabilidade", true).
		WithAuthor(g.organization, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(issuedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(g.organization, term.Responsible))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(term.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(len(term.Items), money.FormatBRL(term.TotalValue)))

	m.AddRows(row.New(4))
	m.AddRows(clauseRows()...)
	m.AddRows(signatureRow(term.Responsible, issuedAt))

	m.AddRows(row.New(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(returnRows(term.Responsible)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(issuedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("TERMO DE RECEBIMENTO E RESPONSABILIDADE", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("PELO USO E GUARDA DE EQUIPAMENTOS", props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(issuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func partiesRow(organization, responsible string) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New(organization+" entrega neste ato os equipamentos descritos abaixo a:", props.Text{
				Size: 9, Top: 2,
			}),
			text.New(responsible, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de equipos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Patrimônio", 2, align.Left),
		h("Item", 3, align.Left),
		h("Marca/Modelo", 3, align.Left),
		h("N° Série", 2, align.Left),
		h("Valor", 2, align.Right),
	)
}

// tableItemRows: una fila por equipo.
func tableItemRows(items []dto.AssetResponse) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(nonEmpty(s, "—"), props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			cell(it.Tag, 2, align.Left),
			cell(it.Name, 3, align.Left),
			cell(strings.TrimSpace(it.Brand+" "+it.Model), 3, align.Left),
			cell(it.SerialNumber, 2, align.Left),
			cell(money.FormatBRL(it.UnitValue), 2, align.Right),
		))
	}
	return result
}

func totalRow(count int, total string) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d equipamento(s)", count), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(6).Add(text.New("VALOR TOTAL: "+total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		})),
	)
}

func clauseRows() []core.Row {
	rows := []core.Row{
		row.New(12).Add(col.New(12).Add(text.New(
			"Declaro-me ciente das condições abaixo e comprometo-me a manter os equipamentos e acessórios "+
				"acima descritos sob minha responsabilidade e em perfeito estado de conservação, sendo que:",
			props.Text{Size: 9, Top: 1},
		))),
	}
	for _, c := range clauses {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("• "+c, props.Text{Size: 8, Top: 1, Left: 3}),
		)))
	}
	return rows
}

func signatureRow(responsible string, at time.Time) core.Row {
	return row.New(28).Add(
		col.New(3),
		col.New(6).Add(
			text.New("_________________________________________", props.Text{Align: align.Center, Top: 14}),
			text.New(responsible, props.Text{Style: fontstyle.Bold, Align: align.Center, Top: 19}),
			text.New(at.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 24, Color: colorGray}),
		),
		col.New(3),
	)
}

func returnRows(responsible string) []core.Row {
	return []core.Row{
		row.New(8).Add(col.New(12).Add(text.New("TERMO DE DEVOLUÇÃO", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}))),
		row.New(12).Add(col.New(12).Add(text.New(
			"Declaro que devolvi os equipamentos acima descritos na data ____/____/________, "+
				"nas condições registradas em vistoria.",
			props.Text{Size: 9, Top: 1},
		))),
		row.New(24).Add(
			col.New(6).Add(
				text.New("_______________________________", props.Text{Align: align.Center, Top: 12}),
				text.New(responsible, props.Text{Size: 8, Align: align.Center, Top: 17}),
			),
			col.New(6).Add(
				text.New("_______________________________", props.Text{Align: align.Center, Top: 12}),
				text.New("Recebido por", props.Text{Size: 8, Align: align.Center, Top: 17}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
