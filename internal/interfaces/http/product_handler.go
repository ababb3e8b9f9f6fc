package http

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/internal/infrastructure/storage"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Política propia de la creación de productos, más estricta que el gate
// externo de GETs.
var createProductPolicy = ratelimit.Policy{Scope: "products:create", Limit: 30, Window: time.Minute}

// ProductHandler maneja las peticiones del panel admin sobre productos.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	venues    repository.VenueRepository
	limiter   *ratelimit.Limiter
	venueSlug string
}

// NewProductHandler construye el handler. venueSlug identifica el local
// administrado por este despliegue.
func NewProductHandler(uc *usecase.ProductUseCase, venues repository.VenueRepository, limiter *ratelimit.Limiter, venueSlug string) *ProductHandler {
	return &ProductHandler{uc: uc, venues: venues, limiter: limiter, venueSlug: venueSlug}
}

func (h *ProductHandler) venueID(c *fiber.Ctx) (string, error) {
	venue, err := h.venues.GetBySlug(h.venueSlug)
	if err != nil {
		return "", internalError(c, err)
	}
	if venue == nil {
		return "", c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return venue.ID, nil
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	if ok, err := CheckPolicy(c, h.limiter, createProductPolicy); !ok {
		return err
	}
	venueID, err := h.venueID(c)
	if venueID == "" {
		return err
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(venueID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido y el precio no puede ser negativo"})
		case errors.Is(err, domain.ErrSlugExhausted):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLUG_EXHAUSTED", Message: "no hay slug disponible para ese nombre"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos (admin)
// @Tags         products
// @Produce      json
// @Param        q         query  string  false  "Búsqueda"
// @Param        category  query  string  false  "Categoría legada"
// @Param        active    query  bool    false  "Solo activos/inactivos"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (sin precio)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name no puede quedar vacío"})
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// ChangePrice godoc
// @Summary      Cambiar precio (transaccional, con histórico)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ChangePriceRequest  true  "Nuevo precio en centavos"
// @Success      200  {object}  dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/change [post]
func (h *ProductHandler) ChangePrice(c *fiber.Ctx) error {
	var in dto.ChangePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangePrice(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el precio no puede ser negativo"})
		case errors.Is(err, domain.ErrPriceUnchanged):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRICE_UNCHANGED", Message: "el precio es igual al vigente"})
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Histórico de precios
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.PriceHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *ProductHandler) PriceHistory(c *fiber.Ctx) error {
	out, err := h.uc.PriceHistory(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// SetImage godoc
// @Summary      Subir imagen del producto
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del producto"
// @Param        file  formData  file    true  "Imagen (jpeg, png o webp, máx 2 MiB)"
// @Success      200  {object}  dto.ProductResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/image [post]
func (h *ProductHandler) SetImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo requerido en el campo file"})
	}
	if header.Size > usecase.MaxImageBytes {
		// Rechazo antes de leer el contenido completo.
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera los 2 MiB"})
	}
	src, err := header.Open()
	if err != nil {
		return internalError(c, err)
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, usecase.MaxImageBytes+1))
	if err != nil {
		return internalError(c, err)
	}

	out, err := h.uc.SetImage(c.UserContext(), c.Params("id"), storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge):
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera los 2 MiB"})
		case errors.Is(err, domain.ErrInvalidMIME):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MIME", Message: "solo se aceptan jpeg, png o webp"})
		case errors.Is(err, domain.ErrStorageDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: "almacenamiento no configurado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo vacío"})
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto (lógico)
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto borrado"})
}
