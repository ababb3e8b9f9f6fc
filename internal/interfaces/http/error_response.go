package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
)

const (
	localProduction = "app_production"
	localErrLogger  = "app_logger"
)

// errorContext deja en los locals lo que internalError necesita: el modo de
// ejecución y el logger de la aplicación.
func errorContext(production bool, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localProduction, production)
		c.Locals(localErrLogger, log)
		return c.Next()
	}
}

// internalError responde un 500. El detalle del error se registra siempre en
// el log; al cliente solo llega en desarrollo. En producción el mensaje es
// genérico: el error interno nunca viaja en el cuerpo de la respuesta.
func internalError(c *fiber.Ctx, err error) error {
	if log, ok := c.Locals(localErrLogger).(zerolog.Logger); ok {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno no manejado")
	}
	msg := err.Error()
	if production, _ := c.Locals(localProduction).(bool); production {
		msg = "error interno"
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}
