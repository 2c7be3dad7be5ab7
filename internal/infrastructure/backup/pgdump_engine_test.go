package backup_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/backup"
)

// script crea un ejecutable sh en dir.
func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requiere /bin/sh")
	}
}

func TestPgDumpEngine_Dump(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	bin := backup.Binaries{
		PgDump: script(t, dir, "pg_dump", `echo "CREATE TABLE x();"`),
		Bzip2:  script(t, dir, "bzip2", `cat`),
	}
	engine := backup.NewPgDumpEngine("postgres://localhost/test", bin, nil, zerolog.Nop())

	var buf bytes.Buffer
	require.NoError(t, engine.Dump(context.Background(), &buf))
	assert.Equal(t, "CREATE TABLE x();\n", buf.String())
}

func TestPgDumpEngine_DumpFalla(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	bin := backup.Binaries{
		PgDump: script(t, dir, "pg_dump", `echo "connection refused" >&2; exit 1`),
		Bzip2:  script(t, dir, "bzip2", `cat`),
	}
	engine := backup.NewPgDumpEngine("postgres://localhost/test", bin, nil, zerolog.Nop())

	err := engine.Dump(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPgDumpEngine_DumpCompresorTerminaAntes(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	bin := backup.Binaries{
		PgDump: script(t, dir, "pg_dump", `head -c 5000000 /dev/zero`),
		Bzip2:  script(t, dir, "bzip2", `echo "bzip2: disco cheio" >&2; exit 2`),
	}
	engine := backup.NewPgDumpEngine("postgres://localhost/test", bin, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	start := time.Now()
	err := engine.Dump(ctx, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco cheio")
	assert.NoError(t, ctx.Err(), "pg_dump no debe quedar bloqueado hasta el timeout")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestPgDumpEngine_RestoreSQL(t *testing.T) {
	skipOnWindows(t)
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.ExpectExec("pg_terminate_backend").WillReturnResult(pgxmock.NewResult("SELECT", 2))

	dir := t.TempDir()
	out := filepath.Join(dir, "applied.sql")
	bin := backup.Binaries{Psql: script(t, dir, "psql", `cat > "`+out+`"`)}
	src := filepath.Join(dir, "backup.sql")
	require.NoError(t, os.WriteFile(src, []byte("SELECT 1;\n"), 0o644))

	engine := backup.NewPgDumpEngine("postgres://localhost/test", bin, mock, zerolog.Nop())
	require.NoError(t, engine.Restore(context.Background(), src))

	applied, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;\n", string(applied))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgDumpEngine_RestoreBz2(t *testing.T) {
	skipOnWindows(t)
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	mock.ExpectExec("pg_terminate_backend").WillReturnResult(pgxmock.NewResult("SELECT", 0))

	dir := t.TempDir()
	out := filepath.Join(dir, "applied.sql")
	src := filepath.Join(dir, "backup.sql.bz2")
	require.NoError(t, os.WriteFile(src, []byte("SELECT 2;\n"), 0o644))
	bin := backup.Binaries{
		Psql:  script(t, dir, "psql", `cat > "`+out+`"`),
		Bzip2: script(t, dir, "bzip2", `cat "$2"`),
	}

	engine := backup.NewPgDumpEngine("postgres://localhost/test", bin, mock, zerolog.Nop())
	require.NoError(t, engine.Restore(context.Background(), src))

	applied, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2;\n", string(applied))
}
