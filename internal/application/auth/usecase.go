package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/pkg/session"
)

// SessionConfig configuración de la cookie de sesión firmada.
type SessionConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase autenticación del panel admin con sesión en cookie firmada.
type AuthUseCase struct {
	users repository.UserRepository
	cfg   SessionConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, cfg SessionConfig) *AuthUseCase {
	return &AuthUseCase{users: users, cfg: cfg}
}

// Login verifica email/password y genera el token de sesión. Email
// desconocido y password incorrecto fallan con el mismo error: la respuesta
// nunca revela cuál de los dos falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (string, *dto.SessionResponse, error) {
	if in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrUnauthorized
	}
	user, err := uc.users.FindByEmail(in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := session.Generate(uc.cfg.Secret, user.ID, user.Email, user.Role, uc.cfg.Issuer, uc.cfg.ExpHours)
	if err != nil {
		return "", nil, err
	}
	return token, &dto.SessionResponse{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Me devuelve el usuario de la sesión actual, releído de la base para que
// un usuario borrado deje de resolver aunque su cookie siga vigente.
func (uc *AuthUseCase) Me(userID string) (*dto.SessionResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionResponse{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}
