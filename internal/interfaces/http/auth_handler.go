package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/auth"
	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Política estricta del login: protege contra fuerza bruta de credenciales.
var loginPolicy = ratelimit.Policy{Scope: "auth:login", Limit: 10, Window: time.Minute}

// AuthHandler maneja login, logout y sesión actual.
type AuthHandler struct {
	uc         *auth.AuthUseCase
	limiter    *ratelimit.Limiter
	cookieName string
	expHours   int
	production bool
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, limiter *ratelimit.Limiter, cfg config.SessionConfig, production bool) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		limiter:    limiter,
		cookieName: cfg.CookieName,
		expHours:   cfg.ExpHours,
		production: production,
	}
}

// Login godoc
// @Summary      Iniciar sesión del panel admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if ok, err := CheckPolicy(c, h.limiter, loginPolicy); !ok {
		return err
	}
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, user, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// Mismo mensaje para email desconocido y password incorrecto.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
		}
		return internalError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		MaxAge:   h.expHours * 3600,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(user)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
