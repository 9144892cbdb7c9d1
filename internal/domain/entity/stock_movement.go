package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntryPurchase   = "entry_purchase"
	MovementEntryReturn     = "entry_return"
	MovementEntryAdjustment = "entry_adjustment"
	MovementEntryTransfer   = "entry_transfer"
	MovementExitSale        = "exit_sale"
	MovementExitReturn      = "exit_return"
	MovementExitAdjustment  = "exit_adjustment"
	MovementExitTransfer    = "exit_transfer"
	MovementExitSpoilage    = "exit_spoilage"
	MovementExitExpiry      = "exit_expiry"
	MovementReserve         = "reserve"
	MovementReleaseReserve  = "release_reserve"
)

// Categorías derivadas del tipo de movimiento.
const (
	CategoryEntry   = "entry"
	CategoryExit    = "exit"
	CategoryReserve = "reserve"
)

// Estados del movimiento. Solo un movimiento confirmado afecta los contadores.
// MovementStateReversed está declarado pero ninguna transición lo alcanza;
// se emite un movimiento correctivo en lugar de revertir.
const (
	MovementStatePending   = "pending"
	MovementStateConfirmed = "confirmed"
	MovementStateVoided    = "voided"
	MovementStateReversed  = "reversed"
)

// movementCategories mapea cada tipo a su categoría.
var movementCategories = map[string]string{
	MovementEntryPurchase:   CategoryEntry,
	MovementEntryReturn:     CategoryEntry,
	MovementEntryAdjustment: CategoryEntry,
	MovementEntryTransfer:   CategoryEntry,
	MovementExitSale:        CategoryExit,
	MovementExitReturn:      CategoryExit,
	MovementExitAdjustment:  CategoryExit,
	MovementExitTransfer:    CategoryExit,
	MovementExitSpoilage:    CategoryExit,
	MovementExitExpiry:      CategoryExit,
	MovementReserve:         CategoryReserve,
	MovementReleaseReserve:  CategoryReserve,
}

// MovementCategory devuelve la categoría del tipo, o "" si el tipo no existe.
func MovementCategory(movementType string) string {
	return movementCategories[movementType]
}

// ValidMovementType indica si el tipo de movimiento está declarado.
func ValidMovementType(movementType string) bool {
	_, ok := movementCategories[movementType]
	return ok
}

// ValidMovementTransition valida las transiciones del ciclo de vida:
// pending → confirmed, pending → voided. Nada alcanza reversed.
func ValidMovementTransition(from, to string) bool {
	if from != MovementStatePending {
		return false
	}
	return to == MovementStateConfirmed || to == MovementStateVoided
}

// StockMovement es una entrada inmutable del libro de inventario.
// Una vez confirmado no se edita ni se elimina; queda como rastro de auditoría.
type StockMovement struct {
	ID        string
	CompanyID string
	ProductID string
	BranchID  string
	LotNumber string

	Type     string
	Quantity decimal.Decimal // siempre > 0; el signo lo da la categoría

	// Fotos del OnHand del StockRecord inmediatamente antes y después de aplicar.
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal

	UnitCost *decimal.Decimal

	// Corrección absoluta: si no es nil, la aplicación fija OnHand en este
	// valor en lugar de aplicar un delta (ajustes tipo "correccion").
	NewQuantity *decimal.Decimal

	State string

	// Metadatos de lote para entradas que crean el registro de stock.
	ManufactureDate *time.Time
	ExpiryDate      *time.Time

	// Referencias opcionales al documento de origen.
	ProviderID     string
	ClientID       string
	SaleID         string
	PurchaseID     string
	TransferID     string
	AdjustmentID   string
	DocumentNumber string
	DocumentType   string
	Reason         string

	CreatedAt   time.Time
	CreatedBy   string
	ConfirmedAt *time.Time
	ConfirmedBy string
}

// Category devuelve la categoría derivada del tipo.
func (m *StockMovement) Category() string {
	return MovementCategory(m.Type)
}
