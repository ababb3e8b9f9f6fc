package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Política del generador de QR: operación cara (render de imagen/PDF).
var qrPolicy = ratelimit.Policy{Scope: "qr:generate", Limit: 20, Window: time.Minute}

// QrHandler genera los QR de mesa.
type QrHandler struct {
	uc        *usecase.QrUseCase
	limiter   *ratelimit.Limiter
	venueSlug string
}

// NewQrHandler construye el handler.
func NewQrHandler(uc *usecase.QrUseCase, limiter *ratelimit.Limiter, venueSlug string) *QrHandler {
	return &QrHandler{uc: uc, limiter: limiter, venueSlug: venueSlug}
}

// Generate godoc
// @Summary      Generar QR de mesa (png o tarjeta pdf)
// @Tags         qr
// @Produce      png
// @Param        tableId  path   string  true   "Identificador de la mesa"
// @Param        format   query  string  false  "png (default) | pdf"
// @Param        label    query  string  false  "Etiqueta impresa en la tarjeta"
// @Success      200
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/qr/{tableId} [post]
func (h *QrHandler) Generate(c *fiber.Ctx) error {
	if ok, err := CheckPolicy(c, h.limiter, qrPolicy); !ok {
		return err
	}
	out, err := h.uc.Generate(h.venueSlug, c.Params("tableId"), c.Query("format"), c.Query("label"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mesa o formato inválido"})
		case errors.Is(err, domain.ErrVenueNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Send(out.Data)
}
