package asset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/changelog"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

// Alias de encabezados aceptados por columna (en minúsculas).
var (
	colTag         = []string{"etiqueta", "patrimonio", "patrimônio", "tag"}
	colName        = []string{"descrição", "descricao", "item", "nome"}
	colSector      = []string{"localização", "localizacao", "setor"}
	colResponsible = []string{"usado por", "responsavel", "responsável"}
	colValue       = []string{"valor (r$)", "valor"}
	colInvoice     = []string{"nota fiscal"}
	colBrand       = []string{"marca"}
	colModel       = []string{"modelo"}
	colAcquired    = []string{"data de compra"}
	colSupplier    = []string{"fonecedor", "fornecedor"}
	colStatus      = []string{"status"}
	colNotes       = []string{"motivo", "observacao", "observação"}
)

type csvRow map[string]string

func (r csvRow) pick(keys []string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Import carga un CSV (separador ";" o "," detectado en la primera línea) y hace upsert por etiqueta.
// Filas sin etiqueta o nombre se omiten. Sectores desconocidos se crean. Todo en una transacción.
func (uc *UseCase) Import(ctx context.Context, r io.Reader, actor string) (*dto.ImportResponse, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	var inserted, updated, skipped int
	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		sectors repository.SectorRepository,
		history repository.HistoryRepository,
	) error {
		sectorIDs := make(map[string]int64)
		for i, row := range rows {
			line := i + 2
			tag, name := row.pick(colTag), row.pick(colName)
			if tag == "" || name == "" {
				skipped++
				continue
			}

			value := money.Normalize(row.pick(colValue))
			if err := validateUnitValue(value); err != nil {
				return domain.Invalid("Linha %d: %s", line, err.Error())
			}

			sectorName := row.pick(colSector)
			if sectorName == "" {
				sectorName = entity.DefaultSectorName
			}
			key := strings.ToLower(sectorName)
			sectorID, ok := sectorIDs[key]
			if !ok {
				created, err := sectors.FindOrCreate(ctx, sectorName)
				if err != nil {
					return domain.Storage(fmt.Sprintf("linha %d: setor '%s'", line, sectorName), err)
				}
				sectorID = created
				sectorIDs[key] = sectorID
			}

			a := &entity.Asset{
				Name:            name,
				Tag:             tag,
				SectorID:        &sectorID,
				ResponsibleName: row.pick(colResponsible),
				UnitValue:       value,
				InvoiceNumber:   row.pick(colInvoice),
				Brand:           row.pick(colBrand),
				Model:           row.pick(colModel),
				AcquisitionDate: row.pick(colAcquired),
				Supplier:        row.pick(colSupplier),
				Status:          row.pick(colStatus),
				Notes:           row.pick(colNotes),
			}
			id, isNew, err := assets.Upsert(ctx, a)
			if err != nil {
				return domain.Storage(fmt.Sprintf("linha %d: upsert", line), err)
			}
			if isNew {
				inserted++
			} else {
				updated++
			}
			if err := appendEntry(ctx, history, id, entity.ActionImport, changelog.Imported(tag, isNew), actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.metrics.MutationFailed("import")
		return nil, err
	}
	uc.metrics.HistoryWritten(entity.ActionImport, int64(inserted+updated))
	return &dto.ImportResponse{
		Message:  fmt.Sprintf("%d itens importados/atualizados com sucesso!", inserted+updated),
		Inserted: inserted,
		Updated:  updated,
		Skipped:  skipped,
	}, nil
}

// readCSV lee todo el archivo; encabezados en minúsculas y sin espacios alrededor.
func readCSV(r io.Reader) ([]csvRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.Storage("read csv", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.Invalid("O arquivo CSV está vazio.")
	}

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ','
	if bytes.IndexByte(firstLine, ';') >= 0 {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domain.Invalid("CSV inválido: %v", err)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]csvRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(csvRow, len(header))
		for i, v := range rec {
			if i < len(header) {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
