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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/application/billing"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/cache"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/warehouse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/warehouse-api/internal/interfaces/http"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// storage agrupa lo que cada driver aporta a los casos de uso.
type storage struct {
	tx        inventory.TxRunner
	repos     repository.Repos
	analytics repository.AnalyticsRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{tx: store, repos: store.Repos(), analytics: store.Analytics(), close: func() {}}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		repos:     postgres.NewRepos(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	m := metrics.New("warehouse_api")

	// Analítica: Redis es opcional; sin él se consulta siempre la base.
	analyticsRepo := st.analytics
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, analítica sin caché")
		} else {
			defer client.Close()
			analyticsRepo = cache.NewAnalyticsCache(analyticsRepo, client, cfg.Analytics.CacheTTL,
				cache.WithLogger(log), cache.WithRecorder(m))
		}
	}

	deps := httpRouter.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(st.repos.Companies),
		CustomerUC:  usecase.NewCustomerUseCase(st.repos),
		ProductUC:   usecase.NewProductUseCase(st.tx, st.repos),
		WarehouseUC: usecase.NewWarehouseUseCase(st.tx, st.repos),
		StockUC:     inventory.NewStockUseCase(st.repos),
		Compat:      inventory.NewCompatibilityValidator(st.tx),
		ItemGuard:   inventory.NewOrderItemGuard(st.tx, st.repos, log),
		OrderUC:     orders.NewOrderUseCase(st.tx, st.repos, log, cfg.Ledger.NumberingRetries),
		InvoiceUC:   billing.NewInvoiceUseCase(st.tx, st.repos, log),
		PDFUC:       billing.NewPDFUseCase(st.repos, infrapdf.NewMarotoPDFGenerator()),
		AnalyticsUC: analytics.NewAnalyticsUseCase(analyticsRepo),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(httpRouter.Metrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Warehouse API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, deps)

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
