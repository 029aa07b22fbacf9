package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/devicepos-api/internal/application/analytics"
	"github.com/jhoicas/devicepos-api/internal/application/auth"
	"github.com/jhoicas/devicepos-api/internal/application/catalog"
	"github.com/jhoicas/devicepos-api/internal/application/sales"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
	"github.com/jhoicas/devicepos-api/internal/infrastructure/memory"
	"github.com/jhoicas/devicepos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/devicepos-api/internal/interfaces/http"
	"github.com/jhoicas/devicepos-api/pkg/config"
	"github.com/jhoicas/devicepos-api/pkg/logger"
	"github.com/jhoicas/devicepos-api/pkg/metrics"
)

// storage repositorios del driver seleccionado por STORAGE_DRIVER.
type storage struct {
	devices repository.DeviceRepository
	sales   repository.SaleRepository
	users   repository.UserRepository
	tx      sales.TxRunner
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return storage{
			devices: store.Devices(),
			sales:   store.Sales(),
			users:   store.Users(),
			tx:      memory.NewTxRunner(store),
			close:   func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return storage{
		devices: postgres.NewDeviceRepository(pool),
		sales:   postgres.NewSaleRepository(pool),
		users:   postgres.NewUserRepository(pool),
		tx:      postgres.NewTxRunner(pool),
		close:   pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// montos como números JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	st := openStorage(ctx, cfg, log)
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	saleMetrics := metrics.NewSales(reg)

	catalogUC := catalog.NewCatalogUseCase(st.devices)
	saleUC := sales.NewSaleUseCase(st.tx, st.devices, st.sales,
		sales.Config{AffinityEnabled: cfg.Sales.AffinityEnabled}, log, saleMetrics)
	analyticsUC := appanalytics.NewAnalyticsUseCase(st.sales, st.devices)
	dashboardUC := appanalytics.NewDashboardUseCase(st.sales, st.devices)
	inventoryUC := appanalytics.NewInventoryReportUseCase(st.devices)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DevicePOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:   catalogUC,
		Sales:     saleUC,
		Analytics: analyticsUC,
		Dashboard: dashboardUC,
		Inventory: inventoryUC,
		Auth:      authUC,
		JWTSecret: cfg.JWT.Secret,
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
