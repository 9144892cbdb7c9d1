package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// AdjustmentHandler maneja el ciclo de vida de los ajustes de inventario (protegido).
type AdjustmentHandler struct {
	uc      *ledger.AdjustmentUseCase
	adjRepo repository.StockAdjustmentRepository
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *ledger.AdjustmentUseCase, adjRepo repository.StockAdjustmentRepository) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc, adjRepo: adjRepo}
}

// Create godoc
// @Summary      Crear ajuste de inventario (nace pendiente)
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, branch_id, adjustment_type, quantity|quantity_new, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// Confirm godoc
// @Summary      Confirmar ajuste pendiente y aplicarlo al stock
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/confirm [post]
func (h *AdjustmentHandler) Confirm(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	adj, err := h.uc.Confirm(c.Context(), companyID, c.Params("id"), userID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Void godoc
// @Summary      Anular ajuste pendiente
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/void [post]
func (h *AdjustmentHandler) Void(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if err := h.uc.Void(c.Context(), companyID, c.Params("id"), userID); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste anulado"})
}

// GetByID godoc
// @Summary      Consultar un ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	adj, err := h.adjRepo.GetByID(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	if adj == nil || adj.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ajuste no encontrado"})
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes por sucursal
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true  "Sucursal"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido", Field: "branch_id"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	adjustments, err := h.adjRepo.ListByBranch(companyID, branchID, limit, offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toAdjustmentResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}
