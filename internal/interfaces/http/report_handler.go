package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/application/reports"
)

// ReportHandler maneja la generación de reportes (protegido).
type ReportHandler struct {
	kardex *reports.KardexUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(kardex *reports.KardexUseCase) *ReportHandler {
	return &ReportHandler{kardex: kardex}
}

// Kardex godoc
// @Summary      Kardex de un producto en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id  path   string  true   "Producto"
// @Param        from        query  string  false  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/kardex/{product_id} [get]
func (h *ReportHandler) Kardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Params("product_id")

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido", Field: "from"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido", Field: "to"})
	}

	pdf, err := h.kardex.GenerateForProduct(c.Context(), companyID, productID, from, to)
	if err != nil {
		return ledgerError(c, err)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="kardex_`+productID+`.pdf"`)
	return c.Send(pdf)
}
