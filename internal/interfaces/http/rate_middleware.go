package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Prefijos exentos del gate externo: estáticos y diagnósticos.
var gateExemptPrefixes = []string{"/health", "/docs", "/uploads", "/images"}

// RequestGate limita las peticiones GET por IP según la tabla de reglas.
// Las mutaciones no pasan por aquí: cada handler de mutación aplica su
// propia política, más estricta.
func RequestGate(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}
		path := c.Path()
		for _, prefix := range gateExemptPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		rule := ratelimit.PickRule(path)
		result := limiter.Check(c.UserContext(), ratelimit.ClientID(c), rule.Policy)
		if !result.Allowed {
			return tooManyRequests(c, rule.Policy)
		}
		return c.Next()
	}
}

// CheckPolicy aplica una política puntual dentro de un handler (mutaciones).
// Devuelve true si la petición puede continuar; si no, ya escribió el 429.
func CheckPolicy(c *fiber.Ctx, limiter *ratelimit.Limiter, p ratelimit.Policy) (bool, error) {
	result := limiter.Check(c.UserContext(), ratelimit.ClientID(c), p)
	if result.Allowed {
		return true, nil
	}
	return false, tooManyRequests(c, p)
}

func tooManyRequests(c *fiber.Ctx, p ratelimit.Policy) error {
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(p.Window.Seconds())))
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
		Code:    "RATE_LIMITED",
		Message: "demasiadas peticiones, intenta de nuevo en unos segundos",
	})
}
