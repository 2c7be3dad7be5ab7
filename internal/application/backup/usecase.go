// Package backup administra las copias de seguridad de la base: crear, listar,
// descargar, eliminar, importar y restaurar archivos de volcado.
package backup

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

const resourceBackup = "backup"

// validName nombres aceptados dentro del directorio de backups; excluye separadores y "..".
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*\.(sql|sql\.bz2|bz2)$`)

// Engine ejecuta el volcado y la restauración contra PostgreSQL.
type Engine interface {
	// Dump escribe el volcado comprimido con bzip2 en w.
	Dump(ctx context.Context, w io.Writer) error
	// Restore cierra las demás sesiones y aplica el archivo (comprimido o .sql plano).
	Restore(ctx context.Context, path string) error
}

// UseCase operaciones sobre el directorio de backups.
type UseCase struct {
	dir    string
	engine Engine
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase dir se crea si no existe al primer uso.
func NewUseCase(dir string, engine Engine, log zerolog.Logger) *UseCase {
	return &UseCase{dir: dir, engine: engine, log: log, now: time.Now}
}

// Create genera backup_<fecha>.sql.bz2. Si el volcado falla se borra el archivo parcial.
func (uc *UseCase) Create(ctx context.Context) (*dto.BackupFileDTO, error) {
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, domain.Storage("create backup dir", err)
	}
	name := "backup_" + uc.now().Format("2006-01-02_15-04-05") + ".sql.bz2"
	path := filepath.Join(uc.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, domain.Storage("create backup file", err)
	}
	dumpErr := uc.engine.Dump(ctx, f)
	closeErr := f.Close()
	if err := errors.Join(dumpErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, domain.Storage("pg_dump", err)
	}
	uc.log.Info().Str("file", name).Msg("backup creado")
	return uc.stat(name)
}

// List archivos de backup, más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.BackupFileDTO, error) {
	entries, err := os.ReadDir(uc.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []dto.BackupFileDTO{}, nil
	}
	if err != nil {
		return nil, domain.Storage("read backup dir", err)
	}
	out := make([]dto.BackupFileDTO, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !validName.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, dto.BackupFileDTO{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Path ruta absoluta de un backup existente (para descarga).
func (uc *UseCase) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(uc.dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NotFound(resourceBackup, name)
		}
		return "", domain.Storage("stat backup", err)
	}
	return path, nil
}

// Delete elimina un backup.
func (uc *UseCase) Delete(ctx context.Context, name string) error {
	path, err := uc.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return domain.Storage("remove backup", err)
	}
	uc.log.Info().Str("file", name).Msg("backup eliminado")
	return nil
}

// Import guarda un archivo subido (.bz2 o .sql) en el directorio de backups.
func (uc *UseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.BackupFileDTO, error) {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if err := ValidateName(name); err != nil {
		return nil, domain.Invalid("Apenas arquivos .bz2 ou .sql são permitidos.")
	}
	if err := os.MkdirAll(uc.dir, 0o755); err != nil {
		return nil, domain.Storage("create backup dir", err)
	}
	path := filepath.Join(uc.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil, &domain.ConflictError{Constraint: name}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, domain.Storage("create backup file", err)
	}
	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, domain.Storage("write backup file", err)
	}
	return uc.stat(name)
}

// Restore reemplaza el contenido de la base con el backup indicado.
func (uc *UseCase) Restore(ctx context.Context, name string) error {
	path, err := uc.Path(name)
	if err != nil {
		return err
	}
	uc.log.Warn().Str("file", name).Msg("restaurando backup")
	if err := uc.engine.Restore(ctx, path); err != nil {
		return domain.Storage("restore", err)
	}
	return nil
}

// ValidateName rechaza rutas y extensiones desconocidas.
func ValidateName(name string) error {
	if name != filepath.Base(name) || strings.Contains(name, "..") || !validName.MatchString(name) {
		return domain.Invalid("Nome de arquivo inválido.")
	}
	return nil
}

func (uc *UseCase) stat(name string) (*dto.BackupFileDTO, error) {
	info, err := os.Stat(filepath.Join(uc.dir, name))
	if err != nil {
		return nil, domain.Storage("stat backup", err)
	}
	return &dto.BackupFileDTO{Name: name, Size: info.Size(), CreatedAt: info.ModTime()}, nil
}
