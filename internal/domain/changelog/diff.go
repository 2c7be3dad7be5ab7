// Package changelog produce las descripciones legibles que se guardan en el histórico:
// el diff campo a campo entre dos estados de un patrimonio y las frases de cada acción.
package changelog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/pkg/money"
)

// NoChanges descripción cuando ningún campo rastreado cambió.
const NoChanges = "Nenhuma alteração de dados detectada."

const separator = "; "

// SectorNames id -> nombre, construido por operación desde el repositorio de sectores.
type SectorNames map[int64]string

// Label nombre del sector o "ID <n>" si no existe; vacío para nil.
func (s SectorNames) Label(id *int64) string {
	if id == nil {
		return ""
	}
	return s.labelOf(*id)
}

func (s SectorNames) labelOf(id int64) string {
	if name, ok := s[id]; ok && name != "" {
		return name
	}
	return "ID " + strconv.FormatInt(id, 10)
}

// Field identifica un campo rastreado (nombre de la columna).
type Field string

// Campos rastreados, en el orden en que aparecen en la descripción.
const (
	FieldName             Field = "nome"
	FieldTag              Field = "patrimonio"
	FieldSector           Field = "setor_id"
	FieldResponsibleName  Field = "responsavel_nome"
	FieldResponsibleEmail Field = "responsavel_email"
	FieldUnitValue        Field = "valor_unitario"
	FieldBrand            Field = "marca"
	FieldModel            Field = "modelo"
	FieldSerialNumber     Field = "numero_serie"
	FieldAcquisitionDate  Field = "data_aquisicao"
	FieldSupplier         Field = "fornecedor"
	FieldWarranty         Field = "garantia"
	FieldStatus           Field = "status"
	FieldNotes            Field = "observacao"
)

type trackedField struct {
	field  Field
	label  string
	raw    func(*entity.Asset) string
	format func(raw string, sectors SectorNames) string
}

var trackedFields = []trackedField{
	{FieldName, "Item", func(a *entity.Asset) string { return a.Name }, nil},
	{FieldTag, "Patrimônio", func(a *entity.Asset) string { return a.Tag }, nil},
	{FieldSector, "Setor", sectorRaw, formatSector},
	{FieldResponsibleName, "Responsável", func(a *entity.Asset) string { return a.ResponsibleName }, nil},
	{FieldResponsibleEmail, "E-mail do Responsável", func(a *entity.Asset) string { return a.ResponsibleEmail }, nil},
	{FieldUnitValue, "Valor", func(a *entity.Asset) string { return a.UnitValue.StringFixed(money.Scale) }, formatMoney},
	{FieldBrand, "Marca", func(a *entity.Asset) string { return a.Brand }, nil},
	{FieldModel, "Modelo", func(a *entity.Asset) string { return a.Model }, nil},
	{FieldSerialNumber, "N° de Série", func(a *entity.Asset) string { return a.SerialNumber }, nil},
	{FieldAcquisitionDate, "Data de Aquisição", func(a *entity.Asset) string { return a.AcquisitionDate }, nil},
	{FieldSupplier, "Fornecedor", func(a *entity.Asset) string { return a.Supplier }, nil},
	{FieldWarranty, "Garantia", func(a *entity.Asset) string { return a.Warranty }, nil},
	{FieldStatus, "Status", func(a *entity.Asset) string { return a.Status }, nil},
	{FieldNotes, "Observação", func(a *entity.Asset) string { return a.Notes }, nil},
}

func sectorRaw(a *entity.Asset) string {
	if a.SectorID == nil {
		return ""
	}
	return strconv.FormatInt(*a.SectorID, 10)
}

func formatSector(raw string, sectors SectorNames) string {
	if raw == "" {
		return ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "ID " + raw
	}
	return sectors.labelOf(id)
}

func formatMoney(raw string, _ SectorNames) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return money.FormatBRL(d)
}

// Diff compara todos los campos rastreados entre before y after.
// Devuelve `Label: de "x" para "y"` por cada cambio, unidos por "; ", o NoChanges.
func Diff(before, after *entity.Asset, sectors SectorNames) string {
	return diff(before, after, sectors, nil)
}

// DiffFields igual que Diff pero solo sobre los campos indicados (el orden sigue siendo el de la tabla).
func DiffFields(before, after *entity.Asset, sectors SectorNames, fields ...Field) string {
	only := make(map[Field]bool, len(fields))
	for _, f := range fields {
		only[f] = true
	}
	return diff(before, after, sectors, only)
}

func diff(before, after *entity.Asset, sectors SectorNames, only map[Field]bool) string {
	if before == nil {
		before = &entity.Asset{}
	}
	if after == nil {
		after = &entity.Asset{}
	}
	var changes []string
	for _, tf := range trackedFields {
		if only != nil && !only[tf.field] {
			continue
		}
		from := strings.TrimSpace(tf.raw(before))
		to := strings.TrimSpace(tf.raw(after))
		if from == to {
			continue
		}
		if tf.format != nil {
			from = tf.format(from, sectors)
			to = tf.format(to, sectors)
		}
		changes = append(changes, fmt.Sprintf(`%s: de "%s" para "%s"`, tf.label, from, to))
	}
	if len(changes) == 0 {
		return NoChanges
	}
	return strings.Join(changes, separator)
}
