package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/qrmenu-api/internal/application/auth"
	"github.com/jhoicas/qrmenu-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/qrmenu-api/internal/infrastructure/pdf"
	"github.com/jhoicas/qrmenu-api/internal/infrastructure/postgres"
	"github.com/jhoicas/qrmenu-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/qrmenu-api/internal/interfaces/http"
	"github.com/jhoicas/qrmenu-api/pkg/config"
	"github.com/jhoicas/qrmenu-api/pkg/logger"
	"github.com/jhoicas/qrmenu-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	venueRepo := postgres.NewVenueRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subCategoryRepo := postgres.NewSubCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	historyRepo := postgres.NewPriceHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	viewLogRepo := postgres.NewViewLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Rate limiting: Redis compartido si está configurado, memoria si no.
	monitor := ratelimit.NewMonitor()
	var shared ratelimit.Store
	if cfg.Rate.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.Rate.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, rate limiting en memoria")
		} else if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no responde, rate limiting en memoria")
		} else {
			shared = redisStore
			log.Info().Msg("rate limiting con backend Redis compartido")
		}
	}
	limiter := ratelimit.NewLimiter(shared, monitor, log.Zerolog())

	store, err := storage.Resolve(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de storage")
	}

	menuUC := usecase.NewMenuUseCase(venueRepo, productRepo, categoryRepo, subCategoryRepo, viewLogRepo, log.Zerolog())
	productUC := usecase.NewProductUseCase(productRepo, historyRepo, txRunner, store, log.Zerolog())
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, subCategoryRepo, productRepo)
	qrUC := usecase.NewQrUseCase(venueRepo, infrapdf.NewQrCardGenerator(), cfg.App.PublicURL)
	authUC := auth.NewAuthUseCase(userRepo, auth.SessionConfig{
		Secret:   cfg.Session.Secret,
		ExpHours: cfg.Session.ExpHours,
		Issuer:   cfg.Session.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "QR Menu API",
	}))

	if cfg.Storage.Provider == "local" || cfg.Storage.Provider == "auto" {
		app.Static("/uploads", cfg.Storage.LocalDir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		MenuUC:     menuUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		QrUC:       qrUC,
		AuthUC:     authUC,
		Venues:     venueRepo,
		Limiter:    limiter,
		Monitor:    monitor,
		Cfg:        cfg,
		Log:        log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
