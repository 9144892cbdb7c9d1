package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste de inventario.
const (
	AdjustmentEntrada    = "entrada"
	AdjustmentSalida     = "salida"
	AdjustmentCorreccion = "correccion"
)

// Estados del documento de ajuste.
const (
	AdjustmentStatePendiente  = "pendiente"
	AdjustmentStateConfirmado = "confirmado"
	AdjustmentStateAnulado    = "anulado"
)

// ValidAdjustmentType indica si el tipo de ajuste está declarado.
func ValidAdjustmentType(t string) bool {
	return t == AdjustmentEntrada || t == AdjustmentSalida || t == AdjustmentCorreccion
}

// StockAdjustment es el documento de ajuste manual de inventario.
// Al confirmarse sintetiza exactamente un StockMovement y lo aplica;
// un ajuste confirmado no admite ediciones ni una segunda confirmación.
type StockAdjustment struct {
	ID        string
	CompanyID string
	ProductID string
	BranchID  string
	LotNumber string

	AdjustmentType string // entrada, salida, correccion
	Quantity       decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityNew    decimal.Decimal // para correccion: valor absoluto final de OnHand
	Reason         string

	State      string
	MovementID string // movimiento sintetizado al confirmar

	CreatedAt   time.Time
	CreatedBy   string
	ConfirmedAt *time.Time
	ConfirmedBy string
	VoidedAt    *time.Time
	VoidedBy    string
}
