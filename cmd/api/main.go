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

	"github.com/tahiry-dev/lalana-api/internal/application/auth"
	"github.com/tahiry-dev/lalana-api/internal/application/report"
	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
	"github.com/tahiry-dev/lalana-api/internal/application/usecase"
	"github.com/tahiry-dev/lalana-api/internal/domain/budget"
	"github.com/tahiry-dev/lalana-api/internal/infrastructure/mongodoc"
	infrapdf "github.com/tahiry-dev/lalana-api/internal/infrastructure/pdf"
	"github.com/tahiry-dev/lalana-api/internal/infrastructure/postgres"
	httpRouter "github.com/tahiry-dev/lalana-api/internal/interfaces/http"
	"github.com/tahiry-dev/lalana-api/pkg/config"
	"github.com/tahiry-dev/lalana-api/pkg/logger"
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

	mongoClient, err := mongodoc.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de documentos")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	sigRepo := postgres.NewSignalementRepository(pool)
	photoRepo := postgres.NewPhotoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	docStore := mongodoc.NewSignalementStore(mongoClient, cfg.Mongo.Database)
	userMirror := mongodoc.NewUserMirror(mongoClient, cfg.Mongo.Database)

	calc := budget.NewCalculator(cfg.Sync.PricePerM2)
	signalementUC := usecase.NewSignalementUseCase(sigRepo, calc)
	photoUC := usecase.NewPhotoUseCase(photoRepo, sigRepo)
	userUC := usecase.NewUserUseCase(userRepo, userMirror)
	statsUC := usecase.NewStatsUseCase(sigRepo)
	syncUC := appsync.NewUseCase(sigRepo, txRunner, docStore, cfg.Sync.SweepTimeout)
	reportUC := report.NewUseCase(sigRepo, infrapdf.NewMarotoReportGenerator())
	authUC := auth.NewUseCase(userRepo, userMirror, auth.Config{
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		JWTExpireMinutes: cfg.JWT.Expiration,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
	})

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
		Title:    "Lalana API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		SignalementUC: signalementUC,
		PhotoUC:       photoUC,
		UserUC:        userUC,
		StatsUC:       statsUC,
		SyncUC:        syncUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
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
