package repository

import (
	"context"

	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update persiste password_hash y role.
	Update(ctx context.Context, user *entity.User) error
	UpdateAvatar(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) (bool, error)
}
