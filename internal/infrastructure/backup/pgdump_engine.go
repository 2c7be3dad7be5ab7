// Package backup ejecuta pg_dump, bzip2 y psql para crear y restaurar volcados.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appbackup "github.com/jhoicas/Patrimonio-api/internal/application/backup"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/postgres"
)

const terminateSessionsSQL = `
SELECT pg_terminate_backend(pid)
FROM pg_stat_activity
WHERE datname = current_database() AND pid <> pg_backend_pid()`

// waitDelay tope para cerrar la E/S de un proceso cancelado o cuyos hijos retienen los pipes.
const waitDelay = 5 * time.Second

// Binaries rutas de los ejecutables externos.
type Binaries struct {
	PgDump string
	Psql   string
	Bzip2  string
}

// PgDumpEngine implementa backup.Engine con las herramientas de línea de comandos de PostgreSQL.
type PgDumpEngine struct {
	databaseURL string
	bin         Binaries
	db          postgres.Querier
	log         zerolog.Logger
}

var _ appbackup.Engine = (*PgDumpEngine)(nil)

// NewPgDumpEngine construye el motor. db se usa para cerrar las sesiones antes de restaurar.
func NewPgDumpEngine(databaseURL string, bin Binaries, db postgres.Querier, log zerolog.Logger) *PgDumpEngine {
	if bin.PgDump == "" {
		bin.PgDump = "pg_dump"
	}
	if bin.Psql == "" {
		bin.Psql = "psql"
	}
	if bin.Bzip2 == "" {
		bin.Bzip2 = "bzip2"
	}
	return &PgDumpEngine{databaseURL: databaseURL, bin: bin, db: db, log: log}
}

// Dump: pg_dump | bzip2 -c > w.
// El volcado incluye DROP ... IF EXISTS para poder restaurarse sobre la base existente.
func (e *PgDumpEngine) Dump(ctx context.Context, w io.Writer) error {
	dump := exec.CommandContext(ctx, e.bin.PgDump, "--dbname="+e.databaseURL, "--clean", "--if-exists", "--no-owner")
	compress := exec.CommandContext(ctx, e.bin.Bzip2, "-c")
	return e.pipe(dump, compress, w)
}

// Restore cierra las demás sesiones de la base y aplica el archivo con psql.
// Archivos .bz2 se descomprimen al vuelo.
func (e *PgDumpEngine) Restore(ctx context.Context, path string) error {
	if _, err := e.db.Exec(ctx, terminateSessionsSQL); err != nil {
		return fmt.Errorf("terminar sesiones: %w", err)
	}

	psql := exec.CommandContext(ctx, e.bin.Psql, "--dbname="+e.databaseURL, "--quiet")
	if strings.HasSuffix(path, ".bz2") {
		decompress := exec.CommandContext(ctx, e.bin.Bzip2, "-dc", path)
		return e.pipe(decompress, psql, io.Discard)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	psql.Stdin = f
	return e.run(psql, io.Discard)
}

// pipe conecta src.Stdout con dst.Stdin mediante un pipe del sistema y vuelca dst.Stdout en w.
// Si dst termina antes de leerlo todo, src recibe EPIPE y termina también.
func (e *PgDumpEngine) pipe(src, dst *exec.Cmd, w io.Writer) error {
	var srcErr, dstErr bytes.Buffer
	src.Stderr, src.WaitDelay = &srcErr, waitDelay
	dst.Stdout, dst.Stderr, dst.WaitDelay = w, &dstErr, waitDelay

	out, err := src.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	dst.Stdin = out

	if err := src.Start(); err != nil {
		return fmt.Errorf("%s: %w", src.Path, err)
	}
	if err := dst.Start(); err != nil {
		_ = src.Process.Kill()
		_ = src.Wait()
		return fmt.Errorf("%s: %w", dst.Path, err)
	}
	// El extremo de lectura queda solo en dst.
	_ = out.Close()

	errDst := dst.Wait()
	errSrc := src.Wait()

	e.logStderr(src.Path, srcErr.String())
	e.logStderr(dst.Path, dstErr.String())
	if errDst != nil {
		return fmt.Errorf("%s: %w: %s", dst.Path, errDst, lastLine(dstErr.String()))
	}
	if errSrc != nil {
		return fmt.Errorf("%s: %w: %s", src.Path, errSrc, lastLine(srcErr.String()))
	}
	return nil
}

func (e *PgDumpEngine) run(cmd *exec.Cmd, w io.Writer) error {
	var stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr, cmd.WaitDelay = w, &stderr, waitDelay
	err := cmd.Run()
	e.logStderr(cmd.Path, stderr.String())
	if err != nil {
		return fmt.Errorf("%s: %w: %s", cmd.Path, err, lastLine(stderr.String()))
	}
	return nil
}

// psql informa errores no fatales por stderr; se registran sin abortar.
func (e *PgDumpEngine) logStderr(bin, out string) {
	if out = strings.TrimSpace(out); out != "" {
		e.log.Warn().Str("bin", bin).Str("stderr", out).Msg("backup: salida de error del proceso")
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
