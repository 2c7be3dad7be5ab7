// patrimonioctl tareas de administración sobre la base de patrimonio:
// migraciones, alta de usuarios y copias de seguridad.
//
// Uso:
//
//	patrimonioctl migrate
//	patrimonioctl user create --username admin --password secreto --role admin
//	patrimonioctl user list
//	patrimonioctl backup run|list
//	patrimonioctl backup restore backup_2024-01-01T03-00-00.sql.bz2
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
