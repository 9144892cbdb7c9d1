// Package ledger contiene la regla única de aplicación de movimientos sobre
// StockRecord (servicio de dominio puro, sin I/O). Todos los caminos de
// mutación del inventario (compras, ventas, ajustes, traslados, reservas)
// pasan por Apply; ningún caller toca los contadores directamente.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

// Apply aplica un movimiento confirmado sobre el registro de stock y deja en
// el movimiento las fotos QuantityBefore/QuantityAfter del OnHand.
//
// Reglas por categoría:
//   - entry:   OnHand += Quantity
//   - exit:    OnHand -= Quantity (sin piso: puede quedar negativo)
//   - reserve: Reserved += Quantity, falla si Available < Quantity
//   - release_reserve: Reserved -= Quantity, falla si Reserved < Quantity
//   - corrección (NewQuantity != nil): OnHand = NewQuantity, sobrescritura
//     absoluta en lugar de delta
//
// Available se recalcula incondicionalmente tras cada mutación. Si el
// movimiento trae UnitCost, sobrescribe el costo del registro (último gana)
// y recalcula TotalCost = UnitCost * OnHand.
func Apply(rec *entity.StockRecord, mov *entity.StockMovement, now time.Time) error {
	if mov.State != entity.MovementStateConfirmed {
		return domain.ErrInvalidState
	}
	if !entity.ValidMovementType(mov.Type) {
		return domain.ErrInvalidInput
	}
	if mov.NewQuantity == nil && !mov.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	before := rec.OnHand

	switch {
	case mov.NewQuantity != nil:
		rec.OnHand = *mov.NewQuantity
	case mov.Type == entity.MovementReserve:
		if rec.Available.LessThan(mov.Quantity) {
			return domain.ErrInsufficientStock
		}
		rec.Reserved = rec.Reserved.Add(mov.Quantity)
	case mov.Type == entity.MovementReleaseReserve:
		if rec.Reserved.LessThan(mov.Quantity) {
			return domain.ErrInsufficientReserved
		}
		rec.Reserved = rec.Reserved.Sub(mov.Quantity)
	case mov.Category() == entity.CategoryEntry:
		rec.OnHand = rec.OnHand.Add(mov.Quantity)
	case mov.Category() == entity.CategoryExit:
		// Sin guarda: una salida puede dejar OnHand negativo.
		rec.OnHand = rec.OnHand.Sub(mov.Quantity)
	default:
		return domain.ErrInvalidInput
	}

	rec.RecomputeAvailable()

	if mov.UnitCost != nil {
		// Último costo gana; no es promedio ponderado.
		rec.UnitCost = *mov.UnitCost
		rec.TotalCost = rec.UnitCost.Mul(rec.OnHand)
	} else if !rec.UnitCost.IsZero() {
		rec.TotalCost = rec.UnitCost.Mul(rec.OnHand)
	}

	rec.LastMovementAt = &now
	rec.LastMovementType = mov.Type
	rec.UpdatedAt = now

	mov.QuantityBefore = before
	mov.QuantityAfter = rec.OnHand
	return nil
}

// NewRecord crea un StockRecord con contadores en cero para la identidad
// (producto, sucursal, lote). Se usa al aplicar el primer movimiento de una
// identidad desconocida.
func NewRecord(companyID, productID, branchID, warehouseID, lotNumber string, now time.Time) *entity.StockRecord {
	rec := &entity.StockRecord{
		CompanyID:   companyID,
		ProductID:   productID,
		BranchID:    branchID,
		WarehouseID: warehouseID,
		LotNumber:   lotNumber,
		OnHand:      decimal.Zero,
		Reserved:    decimal.Zero,
		Available:   decimal.Zero,
		Status:      entity.StockStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return rec
}
