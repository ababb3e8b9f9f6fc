package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/jhoicas/qrmenu-api/pkg/csrf"
)

// CsrfHandler emite el token del double-submit cookie.
type CsrfHandler struct {
	maxAge     int
	production bool
}

// NewCsrfHandler construye el handler.
func NewCsrfHandler(cfg config.CsrfConfig, production bool) *CsrfHandler {
	return &CsrfHandler{maxAge: int(cfg.MaxAge.Seconds()), production: production}
}

// Issue godoc
// @Summary      Emitir token CSRF
// @Tags         csrf
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/csrf [get]
func (h *CsrfHandler) Issue(c *fiber.Ctx) error {
	token, err := csrf.NewToken()
	if err != nil {
		return internalError(c, err)
	}
	// La cookie es legible por JS a propósito: el cliente copia su valor
	// al header en cada mutación.
	c.Cookie(&fiber.Cookie{
		Name:     csrf.CookieName,
		Value:    token,
		MaxAge:   h.maxAge,
		HTTPOnly: false,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"token": token})
}
