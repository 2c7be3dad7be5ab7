package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Patrimonio-api/pkg/config"
	"github.com/jhoicas/Patrimonio-api/pkg/logger"
)

// env dependencias compartidas por los subcomandos; se abren bajo demanda.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "patrimonioctl",
		Short:         "Administración de Patrimônio API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.pool != nil {
				e.pool.Close()
			}
		},
	}
	root.AddCommand(newMigrateCmd(e), newUserCmd(e), newBackupCmd(e))
	return root
}

func (e *env) db(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	e.pool = pool
	return pool, nil
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := postgres.Migrate(e.cfg.DB.ConnectionString()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migraciones aplicadas.")
			return nil
		},
	}
}

// renderTable imprime filas con go-pretty.
func renderTable(cmd *cobra.Command, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}
