package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Patrimonio-api/internal/application/backup"
	infrabackup "github.com/jhoicas/Patrimonio-api/internal/infrastructure/backup"
)

func newBackupCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "backup", Short: "Copias de seguridad de la base"}

	backupUC := func(cmd *cobra.Command) (*backup.UseCase, error) {
		pool, err := e.db(cmd.Context())
		if err != nil {
			return nil, err
		}
		engine := infrabackup.NewPgDumpEngine(e.cfg.DB.ConnectionString(), infrabackup.Binaries{
			PgDump: e.cfg.Backup.PgDumpBin,
			Psql:   e.cfg.Backup.PsqlBin,
			Bzip2:  e.cfg.Backup.Bzip2Bin,
		}, pool, e.log.Component("backup"))
		return backup.NewUseCase(e.cfg.Backup.Dir, engine, e.log.Component("backup")), nil
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Genera un backup comprimido",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := backupUC(cmd)
			if err != nil {
				return err
			}
			f, err := uc.Create(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s gerado (%d bytes).\n", f.Name, f.Size)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los backups disponibles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := backupUC(cmd)
			if err != nil {
				return err
			}
			files, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]table.Row, 0, len(files))
			for _, f := range files {
				rows = append(rows, table.Row{f.Name, f.Size, f.CreatedAt.Format("02/01/2006 15:04")})
			}
			renderTable(cmd, table.Row{"Arquivo", "Tamanho", "Criado em"}, rows)
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore <arquivo>",
		Short: "Restaura un backup sobre la base actual",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := backupUC(cmd)
			if err != nil {
				return err
			}
			if err := uc.Restore(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s restaurado.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(run, list, restore)
	return cmd
}
