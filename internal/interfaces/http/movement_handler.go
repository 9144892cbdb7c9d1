package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	engine  *ledger.Engine
	movRepo repository.StockMovementRepository
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *ledger.Engine, movRepo repository.StockMovementRepository) *MovementHandler {
	return &MovementHandler{engine: engine, movRepo: movRepo}
}

// Register godoc
// @Summary      Registrar movimiento de inventario (nace pending)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, branch_id, type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.RegisterMovementFromRequest(c.Context(), companyID, userID, in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Confirm godoc
// @Summary      Confirmar movimiento pending y aplicarlo al stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/confirm [post]
func (h *MovementHandler) Confirm(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	mov, err := h.engine.ConfirmMovement(c.Context(), companyID, c.Params("id"), userID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// Void godoc
// @Summary      Anular movimiento pending
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/void [post]
func (h *MovementHandler) Void(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if err := h.engine.VoidMovement(c.Context(), companyID, c.Params("id"), userID); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento anulado"})
}

// GetByID godoc
// @Summary      Consultar un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	mov, err := h.movRepo.GetByID(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	if mov == nil || mov.CompanyID != companyID {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos por producto o sucursal
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        branch_id   query  string  false  "Filtrar por sucursal"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Query("product_id")
	branchID := c.Query("branch_id")
	if productID == "" && branchID == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o branch_id es requerido"})
	}
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, usar RFC3339", Field: "from"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, usar RFC3339", Field: "to"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	var movements []*entity.StockMovement
	if productID != "" {
		movements, err = h.movRepo.ListByProduct(companyID, productID, from, to, limit, offset)
	} else {
		movements, err = h.movRepo.ListByBranch(companyID, branchID, from, to, limit, offset)
	}
	if err != nil {
		return ledgerError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Aceptar también fecha simple YYYY-MM-DD
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
