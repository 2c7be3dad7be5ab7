package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/storage"
)

func newUserCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Usuarios de la API"}

	userUC := func(cmd *cobra.Command) (*usecase.UserUseCase, error) {
		pool, err := e.db(cmd.Context())
		if err != nil {
			return nil, err
		}
		files, err := storage.NewLocalFileStore(e.cfg.Storage.PublicDir)
		if err != nil {
			return nil, err
		}
		return usecase.NewUserUseCase(postgres.NewUserRepository(pool), files, e.cfg.Storage.AvatarDir, e.log.Component("user")), nil
	}

	var in dto.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := userUC(cmd)
			if err != nil {
				return err
			}
			out, err := uc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuário %q criado (id %d, %s).\n", out.Username, out.ID, out.Role)
			return nil
		},
	}
	create.Flags().StringVar(&in.Username, "username", "", "nombre de usuario")
	create.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 6 caracteres)")
	create.Flags().StringVar(&in.Role, "role", "user", "admin o user")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los usuarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := userUC(cmd)
			if err != nil {
				return err
			}
			users, err := uc.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]table.Row, 0, len(users))
			for _, u := range users {
				rows = append(rows, table.Row{u.ID, u.Username, u.Role})
			}
			renderTable(cmd, table.Row{"ID", "Usuário", "Perfil"}, rows)
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}
