package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	domledger "github.com/jcastrillon/farmastock-api/internal/domain/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// AdjustmentUseCase gestiona el ciclo de vida del documento de ajuste:
// pendiente → confirmado | anulado. Al confirmar sintetiza exactamente un
// StockMovement ya confirmado y lo aplica en la misma transacción.
type AdjustmentUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewAdjustmentUseCase construye el caso de uso de ajustes.
func NewAdjustmentUseCase(txRunner TxRunner, productRepo repository.ProductRepository, branchRepo repository.BranchRepository) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, productRepo: productRepo, branchRepo: branchRepo}
}

// Create registra un ajuste en estado pendiente.
// entrada/salida exigen Quantity > 0; correccion usa QuantityNew >= 0 como
// valor absoluto final de OnHand.
func (uc *AdjustmentUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateAdjustmentRequest) (*entity.StockAdjustment, error) {
	if in.ProductID == "" || in.BranchID == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAdjustmentType(in.AdjustmentType) {
		return nil, domain.ErrInvalidInput
	}
	switch in.AdjustmentType {
	case entity.AdjustmentEntrada, entity.AdjustmentSalida:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.AdjustmentCorreccion:
		if in.QuantityNew.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	adj := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ProductID:      in.ProductID,
		BranchID:       in.BranchID,
		LotNumber:      in.LotNumber,
		AdjustmentType: in.AdjustmentType,
		Quantity:       in.Quantity,
		QuantityNew:    in.QuantityNew,
		Reason:         in.Reason,
		State:          entity.AdjustmentStatePendiente,
		CreatedAt:      time.Now(),
		CreatedBy:      userID,
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.StockRecordRepository,
		_ repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		return adjRepo.Create(adj)
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// Confirm transiciona pendiente → confirmado, sintetiza el movimiento y lo
// aplica. Un ajuste ya confirmado devuelve ErrImmutableState sin re-aplicar;
// uno anulado devuelve ErrInvalidState.
//
// correccion NO es delta: fija OnHand exactamente en QuantityNew.
func (uc *AdjustmentUseCase) Confirm(ctx context.Context, companyID, adjustmentID, userID string) (*entity.StockAdjustment, error) {
	var confirmed *entity.StockAdjustment
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil || adj.CompanyID != companyID {
			return domain.ErrNotFound
		}
		switch adj.State {
		case entity.AdjustmentStateConfirmado:
			return domain.ErrImmutableState
		case entity.AdjustmentStateAnulado:
			return domain.ErrInvalidState
		}

		now := time.Now()
		mov := synthesizeMovement(adj, userID, now)

		rec, err := lockOrCreateRecord(recordRepo, mov, now)
		if err != nil {
			return err
		}
		adj.QuantityBefore = rec.OnHand
		if adj.AdjustmentType == entity.AdjustmentCorreccion {
			// La cantidad del movimiento registra el delta absoluto del conteo;
			// el tipo refleja el sentido del cambio.
			delta := adj.QuantityNew.Sub(rec.OnHand)
			mov.Quantity = delta.Abs()
			if delta.IsNegative() {
				mov.Type = entity.MovementExitAdjustment
			}
		}
		if err := domledger.Apply(rec, mov, now); err != nil {
			return err
		}
		if adj.AdjustmentType != entity.AdjustmentCorreccion {
			adj.QuantityNew = rec.OnHand
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := recordRepo.Save(rec); err != nil {
			return err
		}

		adj.State = entity.AdjustmentStateConfirmado
		adj.MovementID = mov.ID
		adj.ConfirmedAt = &now
		adj.ConfirmedBy = userID
		if err := adjRepo.Save(adj); err != nil {
			return err
		}
		confirmed = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// Void anula un ajuste pendiente; nunca se aplicó, así que no toca contadores.
func (uc *AdjustmentUseCase) Void(ctx context.Context, companyID, adjustmentID, userID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockRecordRepository,
		_ repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil || adj.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if adj.State == entity.AdjustmentStateConfirmado {
			return domain.ErrImmutableState
		}
		if adj.State != entity.AdjustmentStatePendiente {
			return domain.ErrInvalidState
		}
		now := time.Now()
		adj.State = entity.AdjustmentStateAnulado
		adj.VoidedAt = &now
		adj.VoidedBy = userID
		return adjRepo.Save(adj)
	})
}

// synthesizeMovement deriva el movimiento del tipo de ajuste:
// entrada → entry_adjustment, salida → exit_adjustment, correccion →
// sobrescritura absoluta (NewQuantity) con tipo según el sentido del cambio.
func synthesizeMovement(adj *entity.StockAdjustment, userID string, now time.Time) *entity.StockMovement {
	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		CompanyID:    adj.CompanyID,
		ProductID:    adj.ProductID,
		BranchID:     adj.BranchID,
		LotNumber:    adj.LotNumber,
		Quantity:     adj.Quantity,
		State:        entity.MovementStateConfirmed,
		AdjustmentID: adj.ID,
		Reason:       adj.Reason,
		CreatedAt:    now,
		CreatedBy:    userID,
		ConfirmedAt:  &now,
		ConfirmedBy:  userID,
	}
	switch adj.AdjustmentType {
	case entity.AdjustmentEntrada:
		mov.Type = entity.MovementEntryAdjustment
	case entity.AdjustmentSalida:
		mov.Type = entity.MovementExitAdjustment
	case entity.AdjustmentCorreccion:
		// Sobrescritura absoluta: OnHand queda exactamente en QuantityNew.
		newQty := adj.QuantityNew
		mov.NewQuantity = &newQty
		mov.Type = entity.MovementEntryAdjustment
	}
	return mov
}
