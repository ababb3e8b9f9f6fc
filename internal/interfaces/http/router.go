package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/qrmenu-api/internal/application/auth"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MenuUC     *usecase.MenuUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	QrUC       *usecase.QrUseCase
	AuthUC     *auth.AuthUseCase
	Venues     repository.VenueRepository

	Limiter *ratelimit.Limiter
	Monitor *ratelimit.Monitor
	Cfg     *config.Config
	Log     zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	production := deps.Cfg.App.Production()
	venueSlug := deps.Cfg.App.VenueSlug

	// En producción los errores internos responden un mensaje genérico; el
	// detalle queda solo en el log.
	app.Use(errorContext(production, deps.Log))

	// Gate externo: solo GETs, por tabla de reglas. Las mutaciones aplican
	// su política dentro del handler.
	app.Use(RequestGate(deps.Limiter))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Público
	csrfHandler := NewCsrfHandler(deps.Cfg.Csrf, production)
	api.Get("/csrf", csrfHandler.Issue)

	menuHandler := NewMenuHandler(deps.MenuUC, deps.Limiter)
	api.Get("/venue/:slug/menu", menuHandler.GetMenu)

	proxyHandler := NewImageProxyHandler()
	api.Get("/image-proxy", proxyHandler.Fetch)

	// Toda mutación bajo /api exige el double-submit CSRF, login incluido.
	requireCsrf := RequireCsrf(production, deps.Cfg.Csrf.DevPermissive, deps.Log)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Limiter, deps.Cfg.Session, production)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", requireCsrf, authHandler.Login)
	authGroup.Post("/logout", requireCsrf, authHandler.Logout)
	authGroup.Get("/me", SessionMiddleware(deps.Cfg.Session), authHandler.Me)

	// Protegido: sesión válida; mutaciones además exigen rol ADMIN y CSRF.
	session := SessionMiddleware(deps.Cfg.Session)
	admin := RequireAdmin()

	products := api.Group("/products", session)
	productHandler := NewProductHandler(deps.ProductUC, deps.Venues, deps.Limiter, venueSlug)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/history", productHandler.PriceHistory)
	products.Post("/", admin, requireCsrf, productHandler.Create)
	products.Put("/:id", admin, requireCsrf, productHandler.Update)
	products.Post("/:id/change", admin, requireCsrf, productHandler.ChangePrice)
	products.Post("/:id/image", admin, requireCsrf, productHandler.SetImage)
	products.Delete("/:id", admin, requireCsrf, productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Venues, venueSlug)
	categories := api.Group("/categories", session)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id/subcategories", categoryHandler.ListSubs)
	categories.Post("/", admin, requireCsrf, categoryHandler.Create)
	categories.Put("/:id", admin, requireCsrf, categoryHandler.Update)
	categories.Delete("/:id", admin, requireCsrf, categoryHandler.Delete)

	subCategories := api.Group("/subcategories", session)
	subCategories.Post("/", admin, requireCsrf, categoryHandler.CreateSub)
	subCategories.Put("/:id", admin, requireCsrf, categoryHandler.UpdateSub)
	subCategories.Delete("/:id", admin, requireCsrf, categoryHandler.DeleteSub)

	qrHandler := NewQrHandler(deps.QrUC, deps.Limiter, venueSlug)
	api.Post("/qr/:tableId", session, admin, requireCsrf, qrHandler.Generate)

	metricsHandler := NewMetricsHandler(deps.Monitor)
	metrics := api.Group("/admin/metrics", session, admin)
	metrics.Get("/rate-limits", metricsHandler.RateLimits)
	metrics.Delete("/rate-limits", requireCsrf, metricsHandler.Reset)
}
