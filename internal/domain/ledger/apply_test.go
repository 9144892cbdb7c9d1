package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newRecord() *entity.StockRecord {
	return ledger.NewRecord("co-1", "prod-1", "branch-1", "", "LOTE-A", time.Now())
}

func confirmedMovement(movType string, qty string) *entity.StockMovement {
	return &entity.StockMovement{
		ID:       "mov-1",
		Type:     movType,
		Quantity: dec(qty),
		State:    entity.MovementStateConfirmed,
	}
}

// Una entrada suma OnHand y, con costo, fija UnitCost y TotalCost.
func TestApply_EntradaSumaYCostea(t *testing.T) {
	rec := newRecord()
	mov := confirmedMovement(entity.MovementEntryPurchase, "50")
	cost := dec("2.00")
	mov.UnitCost = &cost

	require.NoError(t, ledger.Apply(rec, mov, time.Now()))

	assert.True(t, rec.OnHand.Equal(dec("50")), "on_hand debe ser 50")
	assert.True(t, rec.Available.Equal(dec("50")))
	assert.True(t, rec.UnitCost.Equal(dec("2.00")))
	assert.True(t, rec.TotalCost.Equal(dec("100.00")), "total_cost = 50 * 2.00")
	assert.True(t, mov.QuantityBefore.Equal(decimal.Zero))
	assert.True(t, mov.QuantityAfter.Equal(dec("50")))
}

// Una salida resta sin piso: el registro puede quedar negativo.
func TestApply_SalidaPuedeDejarNegativo(t *testing.T) {
	rec := newRecord()
	rec.OnHand = dec("10")
	rec.RecomputeAvailable()

	mov := confirmedMovement(entity.MovementExitSale, "15")
	require.NoError(t, ledger.Apply(rec, mov, time.Now()))

	assert.True(t, rec.OnHand.Equal(dec("-5")), "on_hand puede ser negativo tras una salida")
	assert.True(t, rec.Available.Equal(dec("-5")))
	assert.True(t, mov.QuantityBefore.Equal(dec("10")))
	assert.True(t, mov.QuantityAfter.Equal(dec("-5")))
}

// El último costo de entrada gana: no hay promedio ponderado.
func TestApply_UltimoCostoGana(t *testing.T) {
	rec := newRecord()

	mov1 := confirmedMovement(entity.MovementEntryPurchase, "10")
	c1 := dec("2.00")
	mov1.UnitCost = &c1
	require.NoError(t, ledger.Apply(rec, mov1, time.Now()))

	mov2 := confirmedMovement(entity.MovementEntryPurchase, "10")
	c2 := dec("3.00")
	mov2.UnitCost = &c2
	require.NoError(t, ledger.Apply(rec, mov2, time.Now()))

	assert.True(t, rec.UnitCost.Equal(dec("3.00")), "el costo es el de la última entrada, no el promedio")
	assert.True(t, rec.TotalCost.Equal(dec("60.00")), "total_cost = 20 * 3.00")
}

// Reservar descuenta del disponible y falla si no alcanza.
func TestApply_ReservaGuardadaPorDisponible(t *testing.T) {
	rec := newRecord()
	rec.OnHand = dec("50")
	rec.RecomputeAvailable()

	require.NoError(t, ledger.Apply(rec, confirmedMovement(entity.MovementReserve, "20"), time.Now()))
	assert.True(t, rec.Reserved.Equal(dec("20")))
	assert.True(t, rec.Available.Equal(dec("30")))
	assert.True(t, rec.OnHand.Equal(dec("50")), "reservar no toca on_hand")

	err := ledger.Apply(rec, confirmedMovement(entity.MovementReserve, "40"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, rec.Reserved.Equal(dec("20")), "la reserva fallida no debe cambiar nada")
	assert.True(t, rec.Available.Equal(dec("30")))
}

// Liberar más de lo reservado falla.
func TestApply_LiberarReservaGuardada(t *testing.T) {
	rec := newRecord()
	rec.OnHand = dec("50")
	rec.Reserved = dec("20")
	rec.RecomputeAvailable()

	err := ledger.Apply(rec, confirmedMovement(entity.MovementReleaseReserve, "30"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientReserved)

	require.NoError(t, ledger.Apply(rec, confirmedMovement(entity.MovementReleaseReserve, "20"), time.Now()))
	assert.True(t, rec.Reserved.Equal(decimal.Zero))
	assert.True(t, rec.Available.Equal(dec("50")))
}

// La corrección absoluta fija OnHand exactamente, sin importar el valor previo.
func TestApply_CorreccionAbsoluta(t *testing.T) {
	rec := newRecord()
	rec.OnHand = dec("20")
	rec.UnitCost = dec("2.00")
	rec.RecomputeAvailable()

	mov := confirmedMovement(entity.MovementEntryAdjustment, "15")
	newQty := dec("5")
	mov.NewQuantity = &newQty

	require.NoError(t, ledger.Apply(rec, mov, time.Now()))

	assert.True(t, rec.OnHand.Equal(dec("5")), "on_hand debe quedar exactamente en 5")
	assert.True(t, rec.TotalCost.Equal(dec("10.00")), "total_cost se recalcula con el costo vigente")
	assert.True(t, mov.QuantityBefore.Equal(dec("20")))
	assert.True(t, mov.QuantityAfter.Equal(dec("5")))
}

// Solo movimientos confirmados se aplican.
func TestApply_RechazaNoConfirmado(t *testing.T) {
	rec := newRecord()
	mov := confirmedMovement(entity.MovementEntryPurchase, "10")
	mov.State = entity.MovementStatePending

	err := ledger.Apply(rec, mov, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, rec.OnHand.Equal(decimal.Zero))
}

// Tipo desconocido o cantidad no positiva son entrada inválida.
func TestApply_ValidaTipoYCantidad(t *testing.T) {
	rec := newRecord()

	err := ledger.Apply(rec, confirmedMovement("tipo_inventado", "10"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = ledger.Apply(rec, confirmedMovement(entity.MovementEntryPurchase, "0"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = ledger.Apply(rec, confirmedMovement(entity.MovementEntryPurchase, "-3"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Entrada y salida por la misma cantidad vuelven al punto de partida.
func TestApply_RoundTripEntradaSalida(t *testing.T) {
	rec := newRecord()

	require.NoError(t, ledger.Apply(rec, confirmedMovement(entity.MovementEntryPurchase, "33"), time.Now()))
	require.NoError(t, ledger.Apply(rec, confirmedMovement(entity.MovementExitSale, "33"), time.Now()))

	assert.True(t, rec.OnHand.IsZero())
	assert.True(t, rec.Available.IsZero())
}

// Las transiciones de estado: solo pending → confirmed|voided; nada alcanza reversed.
func TestValidMovementTransition(t *testing.T) {
	assert.True(t, entity.ValidMovementTransition(entity.MovementStatePending, entity.MovementStateConfirmed))
	assert.True(t, entity.ValidMovementTransition(entity.MovementStatePending, entity.MovementStateVoided))

	assert.False(t, entity.ValidMovementTransition(entity.MovementStatePending, entity.MovementStateReversed))
	assert.False(t, entity.ValidMovementTransition(entity.MovementStateConfirmed, entity.MovementStateVoided))
	assert.False(t, entity.ValidMovementTransition(entity.MovementStateConfirmed, entity.MovementStateReversed))
	assert.False(t, entity.ValidMovementTransition(entity.MovementStateVoided, entity.MovementStateConfirmed))
}
