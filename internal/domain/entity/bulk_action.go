package entity

// BulkAction mutación homogénea aplicada a un conjunto de patrimonios.
// Es un tipo cerrado: solo ChangeSector, ChangeStatus y AssignResponsible la implementan.
type BulkAction interface {
	bulkAction()
	// Kind nombre estable de la acción (coincide con el campo "action" de la API).
	Kind() string
}

// Nombres de las acciones en lote.
const (
	BulkChangeSector      = "change_sector"
	BulkChangeStatus      = "change_status"
	BulkAssignResponsible = "assign_responsible"
)

// ChangeSector mueve los patrimonios a otro sector.
type ChangeSector struct {
	SectorID int64
}

// ChangeStatus cambia el estado de ciclo de vida.
type ChangeStatus struct {
	Status string
}

// AssignResponsible asigna (o limpia, con Name vacío) el responsable.
type AssignResponsible struct {
	Name  string
	Email string
}

func (ChangeSector) bulkAction()      {}
func (ChangeStatus) bulkAction()      {}
func (AssignResponsible) bulkAction() {}

func (ChangeSector) Kind() string      { return BulkChangeSector }
func (ChangeStatus) Kind() string      { return BulkChangeStatus }
func (AssignResponsible) Kind() string { return BulkAssignResponsible }
