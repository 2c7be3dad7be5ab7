package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de mantenimiento.
const (
	MaintenanceSent        = "Enviado"
	MaintenanceInRepair    = "Em Reparo"
	MaintenanceCompleted   = "Concluído"
	MaintenanceNotRepaired = "Não Reparado"
)

// MaintenanceRecord orden de reparación asociada a un patrimonio.
type MaintenanceRecord struct {
	ID         int64
	AssetID    int64
	SentAt     time.Time
	ReturnedAt *time.Time
	Problem    string
	Provider   string
	Cost       *decimal.Decimal
	Status     string
	Notes      string
	CreatedAt  time.Time
}

// maintenanceRank orden de los estados; los terminales comparten rango.
var maintenanceRank = map[string]int{
	MaintenanceSent:        0,
	MaintenanceInRepair:    1,
	MaintenanceCompleted:   2,
	MaintenanceNotRepaired: 2,
}

// IsMaintenanceStatus indica si s es un estado conocido.
func IsMaintenanceStatus(s string) bool {
	_, ok := maintenanceRank[s]
	return ok
}

// IsOpeningStatus estados válidos al abrir una orden.
func IsOpeningStatus(s string) bool {
	return s == MaintenanceSent || s == MaintenanceInRepair
}

// IsTerminalMaintenance Concluído y Não Reparado no admiten más cambios.
func IsTerminalMaintenance(s string) bool {
	return s == MaintenanceCompleted || s == MaintenanceNotRepaired
}

// CanTransitionMaintenance Enviado -> Em Reparo -> {Concluído | Não Reparado}.
// Repetir el mismo estado no terminal está permitido (para registrar costo u observaciones).
func CanTransitionMaintenance(from, to string) bool {
	fr, ok := maintenanceRank[from]
	if !ok {
		return false
	}
	tr, ok := maintenanceRank[to]
	if !ok {
		return false
	}
	if IsTerminalMaintenance(from) {
		return false
	}
	return tr >= fr
}
