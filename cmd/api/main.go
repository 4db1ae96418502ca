package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/application/sales"
	appsync "github.com/tu-usuario/pos-retail/internal/application/sync"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/infrastructure/platform"
	"github.com/tu-usuario/pos-retail/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-retail/internal/interfaces/http"
	"github.com/tu-usuario/pos-retail/pkg/config"
	"github.com/tu-usuario/pos-retail/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	saleUC := sales.NewSaleUseCase(txRunner, storeRepo, saleRepo, customerRepo)
	summaryUC := appinventory.NewSummaryUseCase(invRepo, productRepo, storeRepo)

	platformClient := platform.NewClient(cfg.Platform)
	reconciler := appsync.NewReconciler(
		platformClient, storeRepo, productRepo, invRepo,
		cfg.Platform.BatchSize, cfg.Platform.BatchDelay, log,
	)
	importer := appsync.NewCatalogImporter(platformClient, storeRepo, productRepo, log)

	// Sincronización periódica opcional; un tick con corrida en curso se salta.
	if cfg.Sync.AutoSync {
		go runAutoSync(ctx, reconciler, cfg.Sync.Interval, log)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	app.Use(recover.New())
	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:     saleUC,
		SummaryUC:  summaryUC,
		Reconciler: reconciler,
		Importer:   importer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	<-ctx.Done()
	log.Info().Msg("apagando...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
}

// runAutoSync dispara la reconciliación en cada intervalo hasta que el contexto muere.
func runAutoSync(ctx context.Context, reconciler *appsync.Reconciler, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := reconciler.SyncInventory(ctx); err != nil {
				if errors.Is(err, domain.ErrSyncInProgress) {
					log.Debug().Msg("sincronización automática saltada: corrida en curso")
					continue
				}
				log.Error().Err(err).Msg("sincronización automática falló")
			}
		}
	}
}
