package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// PhysicalCountUseCase reconcilia el inventario con un conteo físico:
// sobrescribe OnHand con la cantidad contada y registra el delta en las
// observaciones del registro. Este camino no emite StockMovement, a
// diferencia del resto de mutaciones.
type PhysicalCountUseCase struct {
	txRunner TxRunner
}

// NewPhysicalCountUseCase construye el caso de uso de conteo físico.
func NewPhysicalCountUseCase(txRunner TxRunner) *PhysicalCountUseCase {
	return &PhysicalCountUseCase{txRunner: txRunner}
}

// Reconcile aplica el conteo. Falla con ErrNotFound si la identidad
// (producto, sucursal, lote) no tiene registro.
func (uc *PhysicalCountUseCase) Reconcile(ctx context.Context, companyID, userID string, in dto.PhysicalCountRequest) (*entity.StockRecord, error) {
	if in.ProductID == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CountedQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.StockRecordRepository,
		_ repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		rec, err := recordRepo.GetForUpdate(companyID, in.ProductID, in.BranchID, in.LotNumber)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		delta := in.CountedQuantity.Sub(rec.OnHand)
		rec.OnHand = in.CountedQuantity
		rec.RecomputeAvailable()
		if !rec.UnitCost.IsZero() {
			rec.TotalCost = rec.UnitCost.Mul(rec.OnHand)
		}

		note := fmt.Sprintf("[%s] conteo físico por %s: delta %s", now.Format("2006-01-02"), userID, delta.String())
		if in.Observations != "" {
			note += ". " + in.Observations
		}
		if rec.Observations != "" {
			rec.Observations += "\n"
		}
		rec.Observations += note
		rec.UpdatedAt = now

		if err := recordRepo.Save(rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
