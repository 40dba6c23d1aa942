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

	"github.com/bersacloud/consumo-api/internal/application/auth"
	"github.com/bersacloud/consumo-api/internal/application/inventory"
	"github.com/bersacloud/consumo-api/internal/application/usecase"
	"github.com/bersacloud/consumo-api/internal/infrastructure/graph"
	"github.com/bersacloud/consumo-api/internal/infrastructure/postgres"
	httpRouter "github.com/bersacloud/consumo-api/internal/interfaces/http"
	"github.com/bersacloud/consumo-api/pkg/config"
	"github.com/bersacloud/consumo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	reconRepo := postgres.NewReconciliationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	verifier := graph.NewVerifier(cfg.Graph)
	gate := auth.NewSessionGate(verifier, cfg.Session)

	scopeUC := usecase.NewScopeUseCase(warehouseRepo)
	reconUC := inventory.NewReconciliationUseCase(reconRepo)
	adjustUC := inventory.NewAdjustmentUseCase(txRunner)

	consumoHandler := httpRouter.NewConsumoHandler(scopeUC, reconUC, adjustUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consumo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gate:      gate,
		Consumo:   consumoHandler,
		PortalURL: cfg.Session.PortalURL,
		Log:       log,
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
