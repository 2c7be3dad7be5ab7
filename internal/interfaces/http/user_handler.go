package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patrimonio-api/internal/application/auth"
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

// AuthService login.
type AuthService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserService gestión de usuarios.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id, currentUserID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, currentUserID int64) error
	UploadAvatar(ctx context.Context, userID int64, filename string, size int64, r io.Reader) (*dto.UserResponse, error)
}

var (
	_ AuthService = (*auth.AuthUseCase)(nil)
	_ UserService = (*usecase.UserUseCase)(nil)
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc AuthService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UserHandler maneja /api/users y el avatar del usuario autenticado.
type UserHandler struct {
	uc UserService
}

// NewUserHandler construye el handler.
func NewUserHandler(uc UserService) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuários
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Alterar senha e/ou perfil
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "password y/o role"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir usuário
// @Tags         users
// @Security     Bearer
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadAvatar godoc
// @Summary      Atualizar avatar do usuário autenticado
// @Tags         users
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        avatar  formData  file  true  "Imagen (máx. 2MB)"
// @Success      200     {object}  dto.UserResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/user/avatar [post]
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return writeError(c, domain.Invalid("Nenhum arquivo de imagem enviado."))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, domain.Storage("open upload", err))
	}
	defer f.Close()

	out, err := h.uc.UploadAvatar(c.UserContext(), GetUserID(c), fh.Filename, fh.Size, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
