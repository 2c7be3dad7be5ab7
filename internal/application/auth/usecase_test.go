package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Patrimonio-api/internal/application/auth"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/Patrimonio-api/pkg/jwt"
)

type userRepoStub struct {
	repository.UserRepository
	user *entity.User
}

func (s userRepoStub) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, nil
}

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := userRepoStub{user: &entity.User{ID: 7, Username: "maria", PasswordHash: string(hash), Role: entity.RoleAdmin}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 480, Issuer: "patrimonio-api"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	id, err := jwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "maria", id.Username)
	assert.Equal(t, int64(7), id.UserID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "joao", Password: "segredo1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
