package asset

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

// exportHeader usa los mismos nombres que acepta Import, para poder reimportar el archivo.
var exportHeader = []string{
	"patrimonio", "nome", "setor", "responsavel", "valor", "nota fiscal",
	"marca", "modelo", "data de compra", "fornecedor", "status", "observacao",
}

// ExportCSV escribe el listado filtrado completo (sin paginar) separado por ";".
func (uc *UseCase) ExportCSV(ctx context.Context, q dto.AssetListQuery, w io.Writer) error {
	items, _, err := uc.assets.List(ctx, toFilter(q), 0, 0)
	if err != nil {
		return domain.Storage("list assets", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(exportHeader); err != nil {
		return domain.Storage("write csv", err)
	}
	for _, a := range items {
		rec := []string{
			a.Tag, a.Name, a.SectorName, a.ResponsibleName, a.UnitValue.StringFixed(money.Scale), a.InvoiceNumber,
			a.Brand, a.Model, a.AcquisitionDate, a.Supplier, a.Status, a.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return domain.Storage("write csv", err)
		}
	}
	cw.Flush()
	return domain.Storage("flush csv", cw.Error())
}
