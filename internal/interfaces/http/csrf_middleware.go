package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/pkg/csrf"
)

// RequireCsrf aplica el double-submit cookie a las mutaciones. El bypass
// permisivo solo existe fuera de producción y con el flag explícito; cada
// petición que pasa por él queda logueada.
func RequireCsrf(production, devPermissive bool, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		headerToken := c.Get(csrf.HeaderPrimary)
		if headerToken == "" {
			headerToken = c.Get(csrf.HeaderAlt)
		}
		if err := csrf.Verify(headerToken, c.Get(fiber.HeaderCookie)); err != nil {
			if !production && devPermissive {
				log.Warn().
					Str("path", c.Path()).
					Str("method", c.Method()).
					Msg("csrf: bypass permisivo de desarrollo activo")
				return c.Next()
			}
			// 403 genérico: nunca se revela qué lado de la comparación falló.
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "token CSRF no válido"})
		}
		return c.Next()
	}
}
