package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// StockHandler maneja consultas y operaciones sobre los registros de stock:
// listados, traslados, conteo físico, estadísticas y borrado (protegido).
type StockHandler struct {
	engine        *ledger.Engine
	transfer      *ledger.TransferUseCase
	physicalCount *ledger.PhysicalCountUseCase
	stats         *ledger.StatsUseCase
	recordRepo    repository.StockRecordRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(
	engine *ledger.Engine,
	transfer *ledger.TransferUseCase,
	physicalCount *ledger.PhysicalCountUseCase,
	stats *ledger.StatsUseCase,
	recordRepo repository.StockRecordRepository,
) *StockHandler {
	return &StockHandler{
		engine:        engine,
		transfer:      transfer,
		physicalCount: physicalCount,
		stats:         stats,
		recordRepo:    recordRepo,
	}
}

// List godoc
// @Summary      Listar registros de stock por sucursal o producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branch_id   query  string  false  "Filtrar por sucursal"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {array}   dto.StockRecordResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	branchID := c.Query("branch_id")
	productID := c.Query("product_id")
	if branchID == "" && productID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id o product_id es requerido"})
	}

	var (
		records []dto.StockRecordResponse
		err     error
	)
	if productID != "" {
		recs, e := h.recordRepo.ListByProduct(companyID, productID)
		err = e
		for _, r := range recs {
			records = append(records, toRecordResponse(r))
		}
	} else {
		limit := c.QueryInt("limit", 100)
		offset := c.QueryInt("offset", 0)
		recs, e := h.recordRepo.ListByBranch(companyID, branchID, limit, offset)
		err = e
		for _, r := range recs {
			records = append(records, toRecordResponse(r))
		}
	}
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(records), "records": records})
}

// GetByID godoc
// @Summary      Consultar un registro de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	rec, err := h.recordRepo.GetByID(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	if rec == nil || rec.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro de stock no encontrado"})
	}
	return c.JSON(toRecordResponse(rec))
}

// Delete godoc
// @Summary      Eliminar un registro de stock (solo con existencias en cero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if err := h.engine.DeleteRecord(c.Context(), companyID, c.Params("id")); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro eliminado"})
}

// Transfer godoc
// @Summary      Trasladar stock entre sucursales
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_branch_id, to_branch_id, quantity"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.transfer.Transfer(c.Context(), companyID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transfer_id": result.TransferID,
		"exit":        toMovementResponse(result.Exit),
		"entry":       toMovementResponse(result.Entry),
	})
}

// PhysicalCount godoc
// @Summary      Reconciliar inventario con conteo físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhysicalCountRequest  true  "product_id, branch_id, counted_quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/physical-count [post]
func (h *StockHandler) PhysicalCount(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.PhysicalCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.physicalCount.Reconcile(c.Context(), companyID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toRecordResponse(rec))
}

// Stats godoc
// @Summary      Indicadores agregados del inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stats [get]
func (h *StockHandler) Stats(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.stats.Summary(c.Context(), companyID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(out)
}

// NearExpiry godoc
// @Summary      Lotes próximos a vencer (horizonte de 30 días)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (default 100)"
// @Success      200  {array}  dto.StockRecordResponse
// @Router       /api/inventory/stock/near-expiry [get]
func (h *StockHandler) NearExpiry(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	limit := c.QueryInt("limit", 100)
	recs, err := h.stats.NearExpiry(c.Context(), companyID, limit)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.StockRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, toRecordResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}
