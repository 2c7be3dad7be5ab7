package entity

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User operador del sistema; Username identifica al autor en el histórico.
type User struct {
	ID              int64
	Username        string
	PasswordHash    string // bcrypt hash
	Role            string // admin, user
	ProfileImageURL *string
}

// IsValidRole indica si role es uno de los roles soportados.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
