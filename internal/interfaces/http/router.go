package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastrillon/farmastock-api/internal/application/auth"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/application/reports"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Engine        *ledger.Engine
	AdjustmentUC  *ledger.AdjustmentUseCase
	TransferUC    *ledger.TransferUseCase
	PhysicalCount *ledger.PhysicalCountUseCase
	StatsUC       *ledger.StatsUseCase
	KardexUC      *reports.KardexUseCase
	MovementRepo  repository.StockMovementRepository
	AdjustRepo    repository.StockAdjustmentRepository
	RecordRepo    repository.StockRecordRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y bodeguero pueden mutar el inventario; vendedor consulta y
	// registra movimientos (las salidas por venta nacen pending desde el POS).
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	inv := protected.Group("/inventory")

	// Movimientos
	movementHandler := NewMovementHandler(deps.Engine, deps.MovementRepo)
	inv.Post("/movements", movementHandler.Register)
	inv.Get("/movements", movementHandler.List)
	inv.Get("/movements/:id", movementHandler.GetByID)
	inv.Post("/movements/:id/confirm", warehouse, movementHandler.Confirm)
	inv.Post("/movements/:id/void", warehouse, movementHandler.Void)

	// Ajustes
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC, deps.AdjustRepo)
	inv.Post("/adjustments", warehouse, adjustmentHandler.Create)
	inv.Get("/adjustments", adjustmentHandler.List)
	inv.Get("/adjustments/:id", adjustmentHandler.GetByID)
	inv.Post("/adjustments/:id/confirm", warehouse, adjustmentHandler.Confirm)
	inv.Post("/adjustments/:id/void", warehouse, adjustmentHandler.Void)

	// Stock
	stockHandler := NewStockHandler(deps.Engine, deps.TransferUC, deps.PhysicalCount, deps.StatsUC, deps.RecordRepo)
	inv.Get("/stock", stockHandler.List)
	inv.Get("/stock/near-expiry", stockHandler.NearExpiry)
	inv.Get("/stock/:id", stockHandler.GetByID)
	inv.Delete("/stock/:id", warehouse, stockHandler.Delete)
	inv.Post("/transfers", warehouse, stockHandler.Transfer)
	inv.Post("/physical-count", warehouse, stockHandler.PhysicalCount)
	inv.Get("/stats", stockHandler.Stats)

	// Reportes
	reportHandler := NewReportHandler(deps.KardexUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/kardex/:product_id", reportHandler.Kardex)
}
