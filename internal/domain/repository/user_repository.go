package repository

import "github.com/jhoicas/qrmenu-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del panel admin.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}

// ViewLogRepository puerto para los registros de acceso al menú.
type ViewLogRepository interface {
	Create(log *entity.ViewLog) error
}
