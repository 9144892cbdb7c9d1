package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto farmacéutico o de retail (multi-sucursal).
// El stock por sucursal y lote vive en StockRecord; aquí solo datos maestros.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Barcode     string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // último costo de compra registrado
	TaxRate     decimal.Decimal
	UnitMeasure string
	RequiresLot bool // medicamentos: exige lote y fecha de vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
