package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de stock.
const (
	StockStatusAvailable   = "available"
	StockStatusReserved    = "reserved"
	StockStatusInTransit   = "in_transit"
	StockStatusQuarantined = "quarantined"
	StockStatusDefective   = "defective"
	StockStatusExpired     = "expired"
)

// StockRecord representa el stock de un producto por sucursal y lote.
// La identidad es (ProductID, BranchID, LotNumber); WarehouseID es informativo.
// Invariante: Available = OnHand - Reserved, recalculado tras cada mutación.
type StockRecord struct {
	ID          string
	CompanyID   string
	ProductID   string
	BranchID    string
	WarehouseID string

	OnHand    decimal.Decimal
	Reserved  decimal.Decimal
	Available decimal.Decimal

	// Umbrales de alerta (consultivos, no se imponen como restricción dura).
	Minimum  decimal.Decimal
	Maximum  decimal.Decimal
	Critical decimal.Decimal

	// Costeo: último costo de entrada gana (no promedio ponderado).
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	MarketValue decimal.Decimal

	// Metadatos de lote.
	LotNumber       string
	ManufactureDate *time.Time
	ExpiryDate      *time.Time

	Status string

	// Rastro del último movimiento (informativo, no autoritativo).
	LastMovementAt   *time.Time
	LastMovementType string

	Observations string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecomputeAvailable recalcula Available = OnHand - Reserved.
func (r *StockRecord) RecomputeAvailable() {
	r.Available = r.OnHand.Sub(r.Reserved)
}

// BelowMinimum indica si el stock disponible está bajo el umbral mínimo.
func (r *StockRecord) BelowMinimum() bool {
	return r.Minimum.GreaterThan(decimal.Zero) && r.OnHand.LessThan(r.Minimum)
}

// NearExpiry indica si el lote vence dentro del horizonte dado desde now.
func (r *StockRecord) NearExpiry(now time.Time, horizon time.Duration) bool {
	if r.ExpiryDate == nil {
		return false
	}
	return !r.ExpiryDate.After(now.Add(horizon))
}

// ValidLotDates valida que la fecha de vencimiento no sea anterior a la de fabricación.
func (r *StockRecord) ValidLotDates() bool {
	if r.ManufactureDate == nil || r.ExpiryDate == nil {
		return true
	}
	return !r.ExpiryDate.Before(*r.ManufactureDate)
}
