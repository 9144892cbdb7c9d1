package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

func newEngine(env *testEnv) *ledger.Engine {
	return ledger.NewEngine(env.txRunner, env.products, env.branches)
}

// registerAndConfirm registra un movimiento y lo confirma de inmediato.
func registerAndConfirm(t *testing.T, engine *ledger.Engine, in ledger.MovementInput) *entity.StockMovement {
	t.Helper()
	mov, err := engine.RegisterMovement(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, entity.MovementStatePending, mov.State, "el movimiento debe nacer pending")

	confirmed, err := engine.ConfirmMovement(context.Background(), envCompanyID, mov.ID, envUserID)
	require.NoError(t, err)
	return confirmed
}

func entryInput(qty, cost string) ledger.MovementInput {
	c := dec(cost)
	return ledger.MovementInput{
		CompanyID: envCompanyID,
		UserID:    envUserID,
		ProductID: envProductID,
		BranchID:  envBranchA,
		Type:      entity.MovementEntryPurchase,
		Quantity:  dec(qty),
		UnitCost:  &c,
	}
}

// Escenario: entrada de 50 unidades a 2.00 deja on_hand 50 y total_cost 100.
func TestEngine_EntradaCompra(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)

	mov := registerAndConfirm(t, engine, entryInput("50", "2.00"))

	assert.Equal(t, entity.MovementStateConfirmed, mov.State)
	assert.True(t, mov.QuantityBefore.Equal(decimal.Zero))
	assert.True(t, mov.QuantityAfter.Equal(dec("50")))

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	require.NotNil(t, rec, "la confirmación debe crear el registro de stock")
	assert.True(t, rec.OnHand.Equal(dec("50")))
	assert.True(t, rec.Available.Equal(dec("50")))
	assert.True(t, rec.TotalCost.Equal(dec("100.00")))
}

// Escenario: reservar 20 de 50 deja available 30; reservar 40 más falla y no
// cambia nada.
func TestEngine_ReservaInsuficiente(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)
	registerAndConfirm(t, engine, entryInput("50", "2.00"))

	reserveInput := ledger.MovementInput{
		CompanyID: envCompanyID,
		UserID:    envUserID,
		ProductID: envProductID,
		BranchID:  envBranchA,
		Type:      entity.MovementReserve,
		Quantity:  dec("20"),
	}
	registerAndConfirm(t, engine, reserveInput)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.Reserved.Equal(dec("20")))
	assert.True(t, rec.Available.Equal(dec("30")))

	reserveInput.Quantity = dec("40")
	mov, err := engine.RegisterMovement(context.Background(), reserveInput)
	require.NoError(t, err)
	_, err = engine.ConfirmMovement(context.Background(), envCompanyID, mov.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec = env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.Reserved.Equal(dec("20")), "la reserva fallida no debe alterar los contadores")
	assert.True(t, rec.Available.Equal(dec("30")))
}

// Escenario: una salida puede dejar el stock negativo; un registro con
// existencias no se puede borrar.
func TestEngine_SalidaNegativaYBorradoRechazado(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)
	registerAndConfirm(t, engine, entryInput("10", "1.50"))

	exitInput := ledger.MovementInput{
		CompanyID: envCompanyID,
		UserID:    envUserID,
		ProductID: envProductID,
		BranchID:  envBranchA,
		Type:      entity.MovementExitSale,
		Quantity:  dec("30"),
	}
	registerAndConfirm(t, engine, exitInput)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.OnHand.Equal(dec("-20")), "las salidas no tienen piso")

	err := engine.DeleteRecord(context.Background(), envCompanyID, rec.ID)
	assert.ErrorIs(t, err, domain.ErrRecordHasStock, "no se borra un registro con on_hand distinto de cero")
}

// Escenario: confirmar dos veces el mismo movimiento aplica el delta una sola
// vez y la segunda confirmación devuelve ErrImmutableState.
func TestEngine_DobleConfirmacion(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)

	mov, err := engine.RegisterMovement(context.Background(), entryInput("50", "2.00"))
	require.NoError(t, err)

	_, err = engine.ConfirmMovement(context.Background(), envCompanyID, mov.ID, envUserID)
	require.NoError(t, err)
	_, err = engine.ConfirmMovement(context.Background(), envCompanyID, mov.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrImmutableState)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.OnHand.Equal(dec("50")), "el delta debe aplicarse exactamente una vez")
}

// Anular un movimiento pending no toca contadores; anular uno confirmado falla.
func TestEngine_AnularMovimiento(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)

	mov, err := engine.RegisterMovement(context.Background(), entryInput("50", "2.00"))
	require.NoError(t, err)
	require.NoError(t, engine.VoidMovement(context.Background(), envCompanyID, mov.ID, envUserID))

	stored, _ := env.movements.GetByID(mov.ID)
	assert.Equal(t, entity.MovementStateVoided, stored.State)
	assert.Nil(t, env.records.find(envCompanyID, envProductID, envBranchA, ""),
		"un movimiento anulado nunca crea registro de stock")

	// Un movimiento confirmado es inmutable.
	confirmed := registerAndConfirm(t, engine, entryInput("10", "2.00"))
	err = engine.VoidMovement(context.Background(), envCompanyID, confirmed.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrImmutableState)
}

// Confirmar un movimiento anulado devuelve ErrInvalidState.
func TestEngine_ConfirmarAnulado(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)

	mov, err := engine.RegisterMovement(context.Background(), entryInput("50", "2.00"))
	require.NoError(t, err)
	require.NoError(t, engine.VoidMovement(context.Background(), envCompanyID, mov.ID, envUserID))

	_, err = engine.ConfirmMovement(context.Background(), envCompanyID, mov.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Validaciones de registro: tipo desconocido, cantidad no positiva, producto
// inexistente y producto de otra empresa.
func TestEngine_RegistroValidaciones(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)

	in := entryInput("10", "2.00")
	in.Type = "tipo_inventado"
	_, err := engine.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = entryInput("0", "2.00")
	_, err = engine.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = entryInput("10", "2.00")
	in.ProductID = "no-existe"
	_, err = engine.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = entryInput("10", "2.00")
	in.CompanyID = "otra-empresa"
	_, err = engine.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un producto con RequiresLot exige lote en las entradas.
func TestEngine_ProductoConLoteObligatorio(t *testing.T) {
	env := newTestEnv()
	env.products.byID[envProductID].RequiresLot = true
	engine := newEngine(env)

	in := entryInput("10", "2.00")
	_, err := engine.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada sin lote debe rechazarse")

	in.LotNumber = "LOTE-2026-01"
	mov, err := engine.RegisterMovement(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "LOTE-2026-01", mov.LotNumber)
}

// Borrado exitoso cuando el registro queda en cero.
func TestEngine_BorradoConStockCero(t *testing.T) {
	env := newTestEnv()
	engine := newEngine(env)
	registerAndConfirm(t, engine, entryInput("10", "2.00"))

	exitInput := ledger.MovementInput{
		CompanyID: envCompanyID,
		UserID:    envUserID,
		ProductID: envProductID,
		BranchID:  envBranchA,
		Type:      entity.MovementExitSale,
		Quantity:  dec("10"),
	}
	registerAndConfirm(t, engine, exitInput)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	require.True(t, rec.OnHand.IsZero())

	require.NoError(t, engine.DeleteRecord(context.Background(), envCompanyID, rec.ID))
	assert.Nil(t, env.records.find(envCompanyID, envProductID, envBranchA, ""))
}
