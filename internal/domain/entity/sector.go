package entity

// Sector área organizativa a la que se asigna un patrimonio.
type Sector struct {
	ID   int64
	Name string
}

// DefaultSectorName sector usado por la importación cuando la fila no trae uno.
const DefaultSectorName = "Estoque"
