// Package storage guarda archivos subidos en el disco local, bajo el directorio público.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
)

// LocalFileStore implementa ports.FileStore sobre un directorio servido como estático.
// Una referencia "/uploads/x.pdf" corresponde a <publicDir>/uploads/x.pdf.
type LocalFileStore struct {
	publicDir string
}

var _ ports.FileStore = (*LocalFileStore)(nil)

// NewLocalFileStore construye el store. publicDir se resuelve a ruta absoluta.
func NewLocalFileStore(publicDir string) (*LocalFileStore, error) {
	abs, err := filepath.Abs(publicDir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolver %s: %w", publicDir, err)
	}
	return &LocalFileStore{publicDir: abs}, nil
}

// Save escribe r en <publicDir>/<dir>/<uuid><ext> y devuelve "/<dir>/<uuid><ext>".
// Si la copia falla el archivo parcial se borra.
func (s *LocalFileStore) Save(ctx context.Context, dir, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir = strings.Trim(filepath.ToSlash(filepath.Clean("/"+dir)), "/")
	target := filepath.Join(s.publicDir, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(target, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: cerrar archivo: %w", err)
	}
	return "/" + dir + "/" + name, nil
}

// Remove borra el archivo referenciado. Un archivo inexistente no es error;
// una referencia que sale del directorio público sí.
func (s *LocalFileStore) Remove(_ context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", ref, err)
	}
	return nil
}

func (s *LocalFileStore) resolve(ref string) (string, error) {
	path := filepath.Join(s.publicDir, filepath.FromSlash(filepath.Clean("/"+ref)))
	rel, err := filepath.Rel(s.publicDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage: referencia fuera del directorio público: %q", ref)
	}
	return path, nil
}
