package entity

import "time"

// Tipos de acción del histórico. Son los valores persistidos; no cambiarlos.
const (
	ActionCreation    = "CRIAÇÃO"
	ActionUpdate      = "ATUALIZAÇÃO"
	ActionQuickUpdate = "ATUALIZAÇÃO RÁPIDA"
	ActionBulkUpdate  = "ATUALIZAÇÃO EM LOTE"
	ActionMaintenance = "MANUTENÇÃO"
	ActionImport      = "IMPORTAÇÃO"
)

// HistoryEntry registro inmutable de una mutación sobre un patrimonio.
type HistoryEntry struct {
	ID        int64
	AssetID   int64
	Action    string
	Details   string
	Actor     string
	Timestamp time.Time
}
