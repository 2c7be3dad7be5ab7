package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Patrimonio-api/internal/application/auth"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

const resourceUser = "usuário"

// MaxAvatarBytes tamaño máximo de la foto de perfil.
const MaxAvatarBytes = 2 << 20

var avatarExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo      repository.UserRepository
	files     ports.FileStore
	avatarDir string
	log       zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, files ports.FileStore, avatarDir string, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, files: files, avatarDir: avatarDir, log: log}
}

// List usuarios ordenados por nombre.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Storage("list users", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Create hashea la password y persiste. Un nombre repetido vuelve como ConflictError desde el repo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("Usuário e senha são obrigatórios.")
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.Invalid("Perfil inválido: '%s'.", in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, PasswordHash: string(hash), Role: in.Role}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, domain.Storage("create user", err)
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// Update cambia password y/o rol. Un administrador no puede quitarse su propio rol.
func (uc *UserUseCase) Update(ctx context.Context, id, currentUserID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Password == "" && in.Role == "" {
		return nil, domain.Invalid("Nenhum campo para atualizar.")
	}
	if in.Role != "" && !entity.IsValidRole(in.Role) {
		return nil, domain.Invalid("Perfil inválido: '%s'.", in.Role)
	}
	if id == currentUserID && in.Role != "" && in.Role != entity.RoleAdmin {
		return nil, domain.Invalid("Você não pode remover seu próprio perfil de administrador.")
	}

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("get user", err)
	}
	if user == nil {
		return nil, domain.NotFound(resourceUser, id)
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, domain.Storage("update user", err)
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}

// Delete elimina un usuario distinto del que hace la petición.
func (uc *UserUseCase) Delete(ctx context.Context, id, currentUserID int64) error {
	if id == currentUserID {
		return domain.Invalid("Você não pode excluir sua própria conta.")
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return domain.Storage("delete user", err)
	}
	if !ok {
		return domain.NotFound(resourceUser, id)
	}
	return nil
}

// UploadAvatar guarda la imagen, la asocia al usuario y borra la anterior.
func (uc *UserUseCase) UploadAvatar(ctx context.Context, userID int64, filename string, size int64, r io.Reader) (*dto.UserResponse, error) {
	if size > MaxAvatarBytes {
		return nil, domain.Invalid("A imagem deve ter no máximo 2MB.")
	}
	if !avatarExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, domain.Invalid("Apenas arquivos de imagem são permitidos.")
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Storage("get user", err)
	}
	if user == nil {
		return nil, domain.NotFound(resourceUser, userID)
	}

	ref, err := uc.files.Save(ctx, uc.avatarDir, filename, r)
	if err != nil {
		return nil, domain.Storage("save avatar", err)
	}
	if err := uc.repo.UpdateAvatar(ctx, userID, ref); err != nil {
		_ = uc.files.Remove(ctx, ref)
		return nil, domain.Storage("update avatar", err)
	}
	if prev := user.ProfileImageURL; prev != nil && *prev != "" {
		if err := uc.files.Remove(ctx, *prev); err != nil {
			uc.log.Warn().Err(err).Str("ref", *prev).Msg("no se pudo eliminar el avatar anterior")
		}
	}
	user.ProfileImageURL = &ref
	out := auth.ToUserResponse(user)
	return &out, nil
}
