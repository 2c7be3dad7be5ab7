package dto

import "time"

// BackupFileDTO archivo de copia de seguridad disponible.
type BackupFileDTO struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
