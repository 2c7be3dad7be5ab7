package ports

import (
	"context"
	"io"
)

// FileStore almacenamiento de archivos subidos (notas fiscales, avatares).
// Las referencias son rutas públicas relativas, p. ej. "/uploads/notas_fiscais/<uuid>.pdf".
type FileStore interface {
	// Save guarda el contenido bajo dir y devuelve la referencia pública.
	Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error)
	// Remove borra el archivo; un archivo inexistente no es error.
	Remove(ctx context.Context, ref string) error
}
