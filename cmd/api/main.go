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

	"github.com/jcastrillon/farmastock-api/internal/application/auth"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/application/reports"
	infrapdf "github.com/jcastrillon/farmastock-api/internal/infrastructure/pdf"
	"github.com/jcastrillon/farmastock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastrillon/farmastock-api/internal/interfaces/http"
	"github.com/jcastrillon/farmastock-api/pkg/config"
	"github.com/jcastrillon/farmastock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recordRepo := postgres.NewStockRecordRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	adjustRepo := postgres.NewStockAdjustmentRepository(pool)
	statsRepo := postgres.NewLedgerStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := ledger.NewEngine(txRunner, productRepo, branchRepo)
	adjustmentUC := ledger.NewAdjustmentUseCase(txRunner, productRepo, branchRepo)
	transferUC := ledger.NewTransferUseCase(txRunner, productRepo, branchRepo)
	physicalCountUC := ledger.NewPhysicalCountUseCase(txRunner)
	statsUC := ledger.NewStatsUseCase(statsRepo)

	kardexGenerator := infrapdf.NewMarotoKardexGenerator()
	kardexUC := reports.NewKardexUseCase(companyRepo, productRepo, movementRepo, kardexGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "FarmaStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Engine:        engine,
		AdjustmentUC:  adjustmentUC,
		TransferUC:    transferUC,
		PhysicalCount: physicalCountUC,
		StatsUC:       statsUC,
		KardexUC:      kardexUC,
		MovementRepo:  movementRepo,
		AdjustRepo:    adjustRepo,
		RecordRepo:    recordRepo,
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
