// @title           GridAura API
// @version         1.0
// @description     API de seguimiento de obras de red eléctrica: catálogo, ledger de inventario, proyectos, compras y reportes.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Token JWT con prefijo Bearer
package main

import (
	"context"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	_ "github.com/jhoicas/gridaura-api/docs"
	"github.com/jhoicas/gridaura-api/internal/application/auth"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/cache"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/mail"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/ml"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/report"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/gridaura-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/gridaura-api/internal/interfaces/http"
	"github.com/jhoicas/gridaura-api/pkg/config"
	"github.com/jhoicas/gridaura-api/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Cantidades y costos viajan como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	projectMaterialRepo := postgres.NewProjectMaterialRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	orderRepo := postgres.NewProcurementOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Opcionales: cada integración queda apagada si falta su configuración.
	var (
		ledgerMetrics  ports.LedgerMetrics
		httpObserver   httpRouter.HTTPObserver
		metricsHandler nethttp.Handler
	)
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheus()
		ledgerMetrics = prom
		httpObserver = prom
		metricsHandler = prom.Handler()
	}

	var materialCache ports.MaterialCache
	if cfg.Redis.Addr != "" {
		materialCache = cache.NewRedisMaterialCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	} else {
		log.Info().Msg("REDIS_ADDR vacío: catálogo sin caché")
	}

	var reportStorage ports.ObjectStorage
	if cfg.MinIO.Endpoint != "" {
		minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento MinIO")
		}
		reportStorage = minioStorage
	} else {
		log.Info().Msg("MINIO_ENDPOINT vacío: los reportes se descargan directamente")
	}

	if cfg.ML.BaseURL == "" {
		log.Warn().Msg("ML_BASE_URL vacío: la optimización de inventario responderá 502")
	}
	optimizer := ml.NewOptimizerClient(cfg.ML.BaseURL, cfg.ML.Timeout)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, inventoryRepo, movementRepo, materialRepo, ledgerMetrics)
	optimizationUC := inventory.NewOptimizationUseCase(inventoryRepo, materialRepo, movementRepo, projectMaterialRepo, optimizer, ledgerMetrics)
	materialUC := usecase.NewMaterialUseCase(materialRepo, materialCache)
	projectUC := usecase.NewProjectUseCase(projectRepo, assetRepo, projectMaterialRepo)
	assetUC := usecase.NewAssetUseCase(txRunner, assetRepo)
	projectMaterialUC := usecase.NewProjectMaterialUseCase(txRunner, projectMaterialRepo, materialRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, materialRepo)
	procurementUC := usecase.NewProcurementUseCase(orderRepo, projectRepo, materialRepo, vendorRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, projectUC, report.NewPDFRenderer(), report.NewExcelRenderer(), reportStorage)
	authUC := auth.NewAuthUseCase(userRepo, mail.NewLogMailer(log.Zerolog()), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.OTP.TTL)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog(), httpObserver))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GridAura API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		MaterialUC:        materialUC,
		Ledger:            ledgerUC,
		Optimization:      optimizationUC,
		ProjectMaterialUC: projectMaterialUC,
		ProjectUC:         projectUC,
		AssetUC:           assetUC,
		VendorUC:          vendorUC,
		ProcurementUC:     procurementUC,
		ReportUC:          reportUC,
		JWTSecret:         cfg.JWT.Secret,
		ServiceName:       cfg.App.Name,
		MetricsHandler:    metricsHandler,
	})

	var jobs *scheduler.Scheduler
	if cfg.Optimization.Interval > 0 {
		jobs, err = scheduler.New()
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
		if err := jobs.ScheduleOptimization(optimizationUC, cfg.Optimization.Interval, cfg.Optimization.Scenario, false); err != nil {
			log.Fatal().Err(err).Msg("programar optimización")
		}
		jobs.Start()
		log.Info().Dur("interval", cfg.Optimization.Interval).Str("scenario", cfg.Optimization.Scenario).Msg("optimización periódica activa")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if jobs != nil {
		if err := jobs.Shutdown(); err != nil {
			log.Error().Err(err).Msg("apagado del scheduler")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
