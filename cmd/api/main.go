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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/distribucion-api/internal/application/auth"
	"github.com/jhoicas/distribucion-api/internal/application/catalog"
	"github.com/jhoicas/distribucion-api/internal/application/ledger"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/stockquery"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/cache"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/notify"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/distribucion-api/internal/interfaces/http"
	"github.com/jhoicas/distribucion-api/pkg/config"
	"github.com/jhoicas/distribucion-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewDispatcher(log.Zerolog(), cfg.SMTP)

	// Redis es opcional: sin REDIS_ADDR la API sirve disponibilidad sin caché.
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("ping Redis falló, caché de disponibilidad desactivada")
		} else {
			availabilityCache = cache.NewAvailabilityCache(rdb, time.Duration(cfg.Redis.TTLSecs)*time.Second, log.Zerolog())
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(warehouseRepo, productRepo)

	var invalidator transfers.AvailabilityInvalidator
	if availabilityCache != nil {
		invalidator = availabilityCache
	}
	transferUC := transfers.NewUseCase(txRunner, transferRepo, historyRepo, warehouseRepo, productRepo, userRepo, notifier, invalidator)

	var orderInvalidator orders.AvailabilityInvalidator
	if availabilityCache != nil {
		orderInvalidator = availabilityCache
	}
	orderUC := orders.NewUseCase(txRunner, orderRepo, historyRepo, accountRepo, productRepo, warehouseRepo, notifier, orderInvalidator)

	ledgerUC := ledger.NewUseCase(txRunner, accountRepo, ledgerRepo)

	var stockCache stockquery.AvailabilityCache
	if availabilityCache != nil {
		stockCache = availabilityCache
	}
	stockUC := stockquery.NewUseCase(stockRepo, stockCache)

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
		Title:    "Distribución API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		TransferUC: transferUC,
		OrderUC:    orderUC,
		LedgerUC:   ledgerUC,
		StockUC:    stockUC,
		JWTSecret:  cfg.JWT.Secret,
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
