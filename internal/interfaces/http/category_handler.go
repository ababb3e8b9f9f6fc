package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

// CategoryHandler maneja categorías y subcategorías del panel admin.
type CategoryHandler struct {
	uc        *usecase.CategoryUseCase
	venues    repository.VenueRepository
	venueSlug string
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, venues repository.VenueRepository, venueSlug string) *CategoryHandler {
	return &CategoryHandler{uc: uc, venues: venues, venueSlug: venueSlug}
}

func (h *CategoryHandler) venueID(c *fiber.Ctx) (string, error) {
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
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201  {object}  dto.CategoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	venueID, err := h.venueID(c)
	if venueID == "" {
		return err
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCategory(venueID, in)
	if err != nil {
		return categoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías (admin)
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	venueID, err := h.venueID(c)
	if venueID == "" {
		return err
	}
	out, err := h.uc.ListCategories(venueID)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCategory(c.Params("id"), in)
	if err != nil {
		return categoryError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar categoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Params("id")); err != nil {
		return categoryError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría borrada"})
}

// CreateSub godoc
// @Summary      Crear subcategoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubCategoryRequest  true  "Datos de la subcategoría"
// @Success      201  {object}  dto.SubCategoryResponse
// @Router       /api/subcategories [post]
func (h *CategoryHandler) CreateSub(c *fiber.Ctx) error {
	venueID, err := h.venueID(c)
	if venueID == "" {
		return err
	}
	var in dto.CreateSubCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSubCategory(venueID, in)
	if err != nil {
		return categoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSubs godoc
// @Summary      Listar subcategorías de una categoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {array}  dto.SubCategoryResponse
// @Router       /api/categories/{id}/subcategories [get]
func (h *CategoryHandler) ListSubs(c *fiber.Ctx) error {
	out, err := h.uc.ListSubCategories(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateSub godoc
// @Summary      Actualizar subcategoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la subcategoría"
// @Param        body  body  dto.UpdateSubCategoryRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.SubCategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [put]
func (h *CategoryHandler) UpdateSub(c *fiber.Ctx) error {
	var in dto.UpdateSubCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSubCategory(c.Params("id"), in)
	if err != nil {
		return categoryError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "subcategoría no encontrada"})
	}
	return c.JSON(out)
}

// DeleteSub godoc
// @Summary      Borrar subcategoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la subcategoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSub(c *fiber.Ctx) error {
	if err := h.uc.DeleteSubCategory(c.Params("id")); err != nil {
		return categoryError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "subcategoría borrada"})
}

func categoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrCategoryInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_USE", Message: "tiene productos asociados"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "tiene subcategorías asociadas"})
	case errors.Is(err, domain.ErrSlugExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLUG_EXHAUSTED", Message: "no hay slug disponible para ese nombre"})
	}
	return internalError(c, err)
}
