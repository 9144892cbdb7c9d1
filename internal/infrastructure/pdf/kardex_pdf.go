// Package pdf implementa la generación del kardex de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social │ KARDEX DE INVENTARIO + Producto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Lote | Cant | Antes | Después | Costo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas del período                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/application/reports"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.KardexPDFGenerator = (*MarotoKardexGenerator)(nil)

// MarotoKardexGenerator implementa reports.KardexPDFGenerator usando Maroto v2.
type MarotoKardexGenerator struct{}

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	company *entity.Company,
	product *entity.Product,
	movements []*entity.StockMovement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de Inventario", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(movements) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: razón social (izq) y título + producto (der).
func headerRow(company *entity.Company, product *entity.Product) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(product.SKU+" · "+product.Name, props.Text{
				Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(2, "Fecha"),
		header(3, "Tipo"),
		header(2, "Lote"),
		header(1, "Cant."),
		header(1, "Antes"),
		header(1, "Después"),
		header(2, "Costo unit."),
	)
}

func tableDetailRows(movements []*entity.StockMovement) []core.Row {
	rows := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		cost := ""
		if mv.UnitCost != nil {
			cost = mv.UnitCost.StringFixed(2)
		}
		cell := func(size int, value string) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 8}))
		}
		rows = append(rows, row.New(5).Add(
			cell(2, mv.CreatedAt.Format("02/01/2006")),
			cell(3, mv.Type),
			cell(2, mv.LotNumber),
			cell(1, mv.Quantity.String()),
			cell(1, mv.QuantityBefore.String()),
			cell(1, mv.QuantityAfter.String()),
			cell(2, cost),
		))
	}
	return rows
}

// totalsRow: suma entradas y salidas confirmadas del listado.
func totalsRow(movements []*entity.StockMovement) core.Row {
	entries, exits := decimal.Zero, decimal.Zero
	for _, mv := range movements {
		if mv.State != entity.MovementStateConfirmed {
			continue
		}
		switch mv.Category() {
		case entity.CategoryEntry:
			entries = entries.Add(mv.Quantity)
		case entity.CategoryExit:
			exits = exits.Add(mv.Quantity)
		}
	}
	return row.New(8).Add(
		col.New(8).Add(text.New("Totales del período", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(2).Add(text.New("Entradas: "+entries.String(), props.Text{Size: 9, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New("Salidas: "+exits.String(), props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}
