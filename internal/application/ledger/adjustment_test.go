package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

func newAdjustmentUC(env *testEnv) *ledger.AdjustmentUseCase {
	return ledger.NewAdjustmentUseCase(env.txRunner, env.products, env.branches)
}

// seedStock deja on_hand en la cantidad dada vía una entrada confirmada.
func seedStock(t *testing.T, env *testEnv, qty string) {
	t.Helper()
	engine := newEngine(env)
	registerAndConfirm(t, engine, entryInput(qty, "2.00"))
}

// Un ajuste de entrada confirmado suma al stock y sintetiza un movimiento
// entry_adjustment enlazado al documento.
func TestAdjustment_EntradaConfirmada(t *testing.T) {
	env := newTestEnv()
	uc := newAdjustmentUC(env)
	seedStock(t, env, "10")

	adj, err := uc.Create(context.Background(), envCompanyID, envUserID, dto.CreateAdjustmentRequest{
		ProductID:      envProductID,
		BranchID:       envBranchA,
		AdjustmentType: entity.AdjustmentEntrada,
		Quantity:       dec("5"),
		Reason:         "mercancía hallada en bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatePendiente, adj.State, "el ajuste nace pendiente")

	confirmed, err := uc.Confirm(context.Background(), envCompanyID, adj.ID, envUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStateConfirmado, confirmed.State)
	assert.True(t, confirmed.QuantityBefore.Equal(dec("10")))
	assert.True(t, confirmed.QuantityNew.Equal(dec("15")))
	require.NotEmpty(t, confirmed.MovementID, "debe enlazar el movimiento sintetizado")

	mov, _ := env.movements.GetByID(confirmed.MovementID)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementEntryAdjustment, mov.Type)
	assert.Equal(t, entity.MovementStateConfirmed, mov.State)
	assert.Equal(t, adj.ID, mov.AdjustmentID)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.OnHand.Equal(dec("15")))
}

// correccion fija OnHand exactamente en quantity_new, sin importar el valor
// previo; el movimiento sintetizado registra el delta y su sentido.
func TestAdjustment_CorreccionAbsoluta(t *testing.T) {
	env := newTestEnv()
	uc := newAdjustmentUC(env)
	seedStock(t, env, "20")

	adj, err := uc.Create(context.Background(), envCompanyID, envUserID, dto.CreateAdjustmentRequest{
		ProductID:      envProductID,
		BranchID:       envBranchA,
		AdjustmentType: entity.AdjustmentCorreccion,
		QuantityNew:    dec("5"),
		Reason:         "conteo de auditoría",
	})
	require.NoError(t, err)

	confirmed, err := uc.Confirm(context.Background(), envCompanyID, adj.ID, envUserID)
	require.NoError(t, err)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.OnHand.Equal(dec("5")), "on_hand debe quedar exactamente en 5")
	assert.True(t, confirmed.QuantityBefore.Equal(dec("20")))
	assert.True(t, confirmed.QuantityNew.Equal(dec("5")))

	mov, _ := env.movements.GetByID(confirmed.MovementID)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementExitAdjustment, mov.Type, "20 → 5 es un cambio a la baja")
	assert.True(t, mov.Quantity.Equal(dec("15")), "el movimiento registra el delta absoluto")
	assert.True(t, mov.QuantityAfter.Equal(dec("5")))
}

// Confirmar dos veces el mismo ajuste devuelve ErrImmutableState y no
// re-aplica el delta.
func TestAdjustment_DobleConfirmacion(t *testing.T) {
	env := newTestEnv()
	uc := newAdjustmentUC(env)
	seedStock(t, env, "10")

	adj, err := uc.Create(context.Background(), envCompanyID, envUserID, dto.CreateAdjustmentRequest{
		ProductID:      envProductID,
		BranchID:       envBranchA,
		AdjustmentType: entity.AdjustmentSalida,
		Quantity:       dec("4"),
		Reason:         "producto vencido",
	})
	require.NoError(t, err)

	_, err = uc.Confirm(context.Background(), envCompanyID, adj.ID, envUserID)
	require.NoError(t, err)
	_, err = uc.Confirm(context.Background(), envCompanyID, adj.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrImmutableState)

	rec := env.records.find(envCompanyID, envProductID, envBranchA, "")
	assert.True(t, rec.OnHand.Equal(dec("6")), "la salida de 4 debe aplicarse una sola vez")
}

// Anular un ajuste pendiente lo deja anulado sin tocar stock; confirmar uno
// anulado devuelve ErrInvalidState.
func TestAdjustment_AnularYConfirmarAnulado(t *testing.T) {
	env := newTestEnv()
	uc := newAdjustmentUC(env)

	adj, err := uc.Create(context.Background(), envCompanyID, envUserID, dto.CreateAdjustmentRequest{
		ProductID:      envProductID,
		BranchID:       envBranchA,
		AdjustmentType: entity.AdjustmentEntrada,
		Quantity:       dec("5"),
		Reason:         "error de digitación",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Void(context.Background(), envCompanyID, adj.ID, envUserID))
	stored, _ := env.adjustments.GetByID(adj.ID)
	assert.Equal(t, entity.AdjustmentStateAnulado, stored.State)
	assert.Nil(t, env.records.find(envCompanyID, envProductID, envBranchA, ""))

	_, err = uc.Confirm(context.Background(), envCompanyID, adj.ID, envUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Validaciones de creación: tipo desconocido, cantidad no positiva para
// entrada/salida, quantity_new negativa para correccion y razón obligatoria.
func TestAdjustment_Validaciones(t *testing.T) {
	env := newTestEnv()
	uc := newAdjustmentUC(env)

	base := dto.CreateAdjustmentRequest{
		ProductID:      envProductID,
		BranchID:       envBranchA,
		AdjustmentType: entity.AdjustmentEntrada,
		Quantity:       dec("5"),
		Reason:         "ajuste",
	}

	in := base
	in.AdjustmentType = "otro"
	_, err := uc.Create(context.Background(), envCompanyID, envUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Quantity = dec("0")
	_, err = uc.Create(context.Background(), envCompanyID, envUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.AdjustmentType = entity.AdjustmentCorreccion
	in.QuantityNew = dec("-1")
	_, err = uc.Create(context.Background(), envCompanyID, envUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = base
	in.Reason = ""
	_, err = uc.Create(context.Background(), envCompanyID, envUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
