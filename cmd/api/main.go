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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Patrimonio-api/docs"
	appanalytics "github.com/jhoicas/Patrimonio-api/internal/application/analytics"
	"github.com/jhoicas/Patrimonio-api/internal/application/asset"
	"github.com/jhoicas/Patrimonio-api/internal/application/auth"
	"github.com/jhoicas/Patrimonio-api/internal/application/backup"
	"github.com/jhoicas/Patrimonio-api/internal/application/maintenance"
	"github.com/jhoicas/Patrimonio-api/internal/application/usecase"
	infrabackup "github.com/jhoicas/Patrimonio-api/internal/infrastructure/backup"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Patrimonio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Patrimonio-api/internal/interfaces/http"
	"github.com/jhoicas/Patrimonio-api/pkg/config"
	"github.com/jhoicas/Patrimonio-api/pkg/logger"
)

// @title                       Patrimônio API
// @version                     1.0
// @description                 Controle de patrimônio: cadastro, histórico, manutenções, termo de responsabilidade e backups.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	files, err := storage.NewLocalFileStore(cfg.Storage.PublicDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio público")
	}
	prom := metrics.New(prometheus.DefaultRegisterer)

	assetRepo := postgres.NewAssetRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	assetUC := asset.NewUseCase(txRunner, assetRepo, historyRepo, files, prom, log.Component("asset"))
	bulkUC := asset.NewBulkUseCase(txRunner, prom)
	maintenanceUC := maintenance.NewUseCase(txRunner, maintenanceRepo, prom)
	sectorUC := usecase.NewSectorUseCase(sectorRepo)
	userUC := usecase.NewUserUseCase(userRepo, files, cfg.Storage.AvatarDir, log.Component("user"))
	custodyUC := usecase.NewCustodyUseCase(assetRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Organization))
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	engine := infrabackup.NewPgDumpEngine(cfg.DB.ConnectionString(), infrabackup.Binaries{
		PgDump: cfg.Backup.PgDumpBin,
		Psql:   cfg.Backup.PsqlBin,
		Bzip2:  cfg.Backup.Bzip2Bin,
	}, pool, log.Component("backup"))
	backupUC := backup.NewUseCase(cfg.Backup.Dir, engine, log.Component("backup"))

	var scheduler *backup.Scheduler
	if cfg.Backup.Enabled {
		scheduler, err = backup.NewScheduler(backupUC, cfg.Backup.Schedule, log.Component("backup"))
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Backup.Schedule).Msg("programación de backups")
		}
		scheduler.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.MetricsMiddleware(prom))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:        httpRouter.NewAuthHandler(authUC),
		Assets:      httpRouter.NewAssetHandler(assetUC, bulkUC, files, cfg.Storage.InvoiceDir),
		Maintenance: httpRouter.NewMaintenanceHandler(maintenanceUC),
		Sectors:     httpRouter.NewSectorHandler(sectorUC),
		Users:       httpRouter.NewUserHandler(userUC),
		Dashboard:   httpRouter.NewDashboardHandler(dashboardUC),
		Backups:     httpRouter.NewBackupHandler(backupUC),
		Custody:     httpRouter.NewCustodyHandler(custodyUC),
		JWTSecret:   cfg.JWT.Secret,

		LoginMaxAttempts: cfg.HTTP.LoginMaxAttempts,
		LoginWindow:      time.Duration(cfg.HTTP.LoginWindowMinutes) * time.Minute,
	})

	// Notas fiscales y avatares
	app.Static("/", cfg.Storage.PublicDir)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
