package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUserRequest cambia password y/o rol; campos vacíos no se tocan.
type UpdateUserRequest struct {
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Role            string  `json:"role"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"accessToken"`
	User  UserResponse `json:"user"`
}

// SectorRequest alta de sector.
type SectorRequest struct {
	Name string `json:"nome" validate:"required,max=100"`
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}
