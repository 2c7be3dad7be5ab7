package changelog

import (
	"fmt"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// QuickUpdateFields campos que la actualización rápida puede tocar.
var QuickUpdateFields = []Field{FieldSector, FieldResponsibleName, FieldResponsibleEmail}

// Created descripción del alta.
func Created(name, tag string) string {
	return fmt.Sprintf("Item '%s' (Patrimônio: %s) foi criado.", name, tag)
}

// Bulk descripción de una acción en lote; el sector se resuelve con sectors.
func Bulk(action entity.BulkAction, sectors SectorNames) string {
	switch a := action.(type) {
	case entity.ChangeSector:
		return fmt.Sprintf("Setor alterado para '%s'", sectors.labelOf(a.SectorID))
	case entity.ChangeStatus:
		return fmt.Sprintf("Status alterado para '%s'", a.Status)
	case entity.AssignResponsible:
		name := a.Name
		if name == "" {
			name = "Nenhum"
		}
		return fmt.Sprintf("Responsável atribuído: '%s'", name)
	default:
		panic(fmt.Sprintf("changelog: acción en lote desconocida %T", action))
	}
}

// MaintenanceOpened descripción del envío a reparación.
func MaintenanceOpened(problem string) string {
	return "Item enviado para reparo. Motivo: " + problem
}

// MaintenanceUpdated descripción del cierre o actualización de una orden.
func MaintenanceUpdated(status, assetStatus string) string {
	return fmt.Sprintf("Manutenção atualizada. Status: %s. Novo status do item: %s", status, assetStatus)
}

// Imported descripción de una fila aplicada por importación CSV.
func Imported(tag string, inserted bool) string {
	if inserted {
		return fmt.Sprintf("Item (Patrimônio: %s) criado por importação.", tag)
	}
	return fmt.Sprintf("Item (Patrimônio: %s) atualizado por importação.", tag)
}
