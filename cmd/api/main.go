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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sku-matrix-api/internal/application/catalog"
	"github.com/jhoicas/sku-matrix-api/internal/application/inventory"
	"github.com/jhoicas/sku-matrix-api/internal/application/sequence"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/cache"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/memory"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/sku-matrix-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sku-matrix-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/sku-matrix-api/internal/interfaces/http"
	"github.com/jhoicas/sku-matrix-api/pkg/config"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// repos adaptadores de almacenamiento elegidos por STORAGE_BACKEND.
type repos struct {
	products repository.ProductRepository
	grades   repository.GradeRepository
	colors   repository.ColorRepository
	stores   repository.StoreRepository
	variants repository.VariantRepository
	stock    repository.StockRepository
	tx       catalog.VariantTxRunner
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
		Str("sequence", cfg.Sequence.Backend).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas /api responderán 401")
	}

	ctx := context.Background()

	var (
		r    repos
		pool *pgxpool.Pool
		mem  *memory.Store
	)
	switch cfg.App.Storage {
	case config.BackendPostgres:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		r = repos{
			products: postgres.NewProductRepository(pool),
			grades:   postgres.NewGradeRepository(pool),
			colors:   postgres.NewColorRepository(pool),
			stores:   postgres.NewStoreRepository(pool),
			variants: postgres.NewVariantRepository(pool),
			stock:    postgres.NewStockRepository(pool),
			tx:       postgres.NewTxRunner(pool),
		}
	default:
		mem = memory.New()
		if cfg.App.CatalogFile != "" {
			if err := loadCatalog(mem, cfg.App.CatalogFile, cfg.App.CatalogCharset); err != nil {
				log.Fatal().Err(err).Str("file", cfg.App.CatalogFile).Msg("cargar catálogo")
			}
		}
		r = repos{
			products: mem,
			grades:   mem.Grades(),
			colors:   mem,
			stores:   mem,
			variants: mem,
			stock:    mem,
			tx:       mem,
		}
	}

	// Contadores: la misma base, Redis (INCR) o memoria.
	var seqStore sequence.Store
	switch cfg.Sequence.Backend {
	case config.BackendPostgres:
		seqStore = postgres.NewSequenceStore(pool)
	case config.BackendRedis:
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		redisStore := cache.NewSequenceStore(client, cfg.Redis.Prefix)
		defer redisStore.Close()
		seqStore = redisStore
	default:
		if mem == nil {
			mem = memory.New()
		}
		seqStore = mem
	}

	m := metrics.New()
	alloc := sequence.NewAllocator(seqStore, log,
		sequence.WithTimeout(cfg.Sequence.AllocateTimeout),
		sequence.WithMetrics(m),
	)

	referenceUC := catalog.NewReferenceUseCase(alloc, r.products, r.grades, log)
	matrixBuilder := catalog.NewMatrixBuilder(alloc, r.grades, r.colors, cfg.Sequence.BarcodePrefix, log,
		catalog.WithOfflineFallback(cfg.Sequence.OfflineFallback),
		catalog.WithMatrixMetrics(m),
	)
	persister := catalog.NewBatchPersister(r.products, r.grades, r.colors, r.variants, r.tx, alloc,
		cfg.Sequence.BarcodePrefix, m, log)
	labelsUC := catalog.NewLabelsUseCase(r.products, r.grades, r.colors, r.variants, infrapdf.NewLabelPDFGenerator())
	stockMatrixUC := inventory.NewStockMatrixUseCase(r.products, r.grades, r.colors, r.stores, r.variants, r.stock, log)

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
		Title:    "SKU Matrix API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		References:  referenceUC,
		Labels:      labelsUC,
		Matrix:      matrixBuilder,
		Persister:   persister,
		StockMatrix: stockMatrixUC,
		Metrics:     m,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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

func loadCatalog(mem *memory.Store, path, charset string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cat, err := seed.Read(f, charset)
	if err != nil {
		return err
	}
	cat.LoadInto(mem)
	return nil
}
