package entity

import "time"

// Roles de usuario del panel de administración.
const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// User usuario del panel admin. La sesión guarda {id, email, role} en la cookie.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string // ADMIN | VIEWER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
