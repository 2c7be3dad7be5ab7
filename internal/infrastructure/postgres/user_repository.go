package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Nombre repetido → ConflictError.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		return translate("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre (para login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "get user by username", `WHERE username = $1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	query := `SELECT id, username, password_hash, role, profile_image_url FROM usuarios ` + where
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.ProfileImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// List usuarios ordenados por nombre.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT id, username, role, profile_image_url FROM usuarios ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update persiste password_hash y role.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	tag, err := r.q.Exec(ctx, `UPDATE usuarios SET password_hash = $2, role = $3 WHERE id = $1`,
		user.ID, user.PasswordHash, user.Role)
	if err != nil {
		return translate("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("usuário", user.ID)
	}
	return nil
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id int64, url string) error {
	tag, err := r.q.Exec(ctx, `UPDATE usuarios SET profile_image_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return translate("update avatar", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("usuário", id)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return false, translate("delete user", err)
	}
	return tag.RowsAffected() > 0, nil
}
