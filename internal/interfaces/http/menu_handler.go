package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/qrmenu-api/internal/application/dto"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/storefront"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// Política propia del menú, además del gate externo.
var menuPolicy = ratelimit.Policy{Scope: "handler:menu", Limit: 120, Window: time.Minute}

// MenuHandler sirve el menú público.
type MenuHandler struct {
	uc      *usecase.MenuUseCase
	limiter *ratelimit.Limiter
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase, limiter *ratelimit.Limiter) *MenuHandler {
	return &MenuHandler{uc: uc, limiter: limiter}
}

// GetMenu godoc
// @Summary      Menú público de un local
// @Tags         menu
// @Produce      json
// @Param        slug      path   string  true   "Slug o id del local"
// @Param        category  query  string  false  "Slug de categoría"
// @Param        sub       query  string  false  "Slug de subcategoría (ALL = todas)"
// @Param        q         query  string  false  "Búsqueda por nombre o descripción"
// @Param        table     query  string  false  "Mesa (registro de vista)"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/venue/{slug}/menu [get]
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	if ok, err := CheckPolicy(c, h.limiter, menuPolicy); !ok {
		return err
	}

	query := storefront.Query{
		CategorySlug:    c.Query("category"),
		SubCategorySlug: c.Query("sub"),
		Search:          c.Query("q"),
	}
	out, err := h.uc.GetMenu(c.Params("slug"), query, c.Query("table"), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if errors.Is(err, domain.ErrVenueNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
		}
		return internalError(c, err)
	}

	// El menú cambia poco: cacheable en CDN con revalidación en segundo plano.
	c.Set(fiber.HeaderCacheControl, "public, s-maxage=30, stale-while-revalidate=300")
	return c.JSON(out)
}
