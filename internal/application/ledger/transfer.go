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

// TransferUseCase traslada stock entre sucursales en una sola transacción:
// salida en origen y entrada en destino comparten un TransferID y copian los
// metadatos de lote (lote, fechas, costo) del registro de origen.
type TransferUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewTransferUseCase construye el caso de uso de traslados.
func NewTransferUseCase(txRunner TxRunner, productRepo repository.ProductRepository, branchRepo repository.BranchRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, productRepo: productRepo, branchRepo: branchRepo}
}

// TransferResult par de movimientos emitidos por un traslado.
type TransferResult struct {
	TransferID string
	Exit       *entity.StockMovement
	Entry      *entity.StockMovement
}

// Transfer valida y ejecuta el traslado. Falla con ErrInsufficientStock si el
// disponible en origen es menor a la cantidad; la suma de OnHand entre
// sucursales se conserva.
func (uc *TransferUseCase) Transfer(ctx context.Context, companyID, userID string, in dto.TransferRequest) (*TransferResult, error) {
	if in.ProductID == "" || in.FromBranchID == "" || in.ToBranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromBranchID == in.ToBranchID || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
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
	fromBranch, err := uc.branchRepo.GetByID(in.FromBranchID)
	if err != nil {
		return nil, err
	}
	toBranch, err := uc.branchRepo.GetByID(in.ToBranchID)
	if err != nil {
		return nil, err
	}
	if fromBranch == nil || toBranch == nil || fromBranch.CompanyID != companyID || toBranch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	result := &TransferResult{TransferID: uuid.New().String()}
	err = uc.txRunner.Run(ctx, func(
		recordRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		now := time.Now()

		// Bloquea el registro de origen; identidad inexistente = disponible cero.
		origin, err := recordRepo.GetForUpdate(companyID, in.ProductID, in.FromBranchID, in.LotNumber)
		if err != nil {
			return err
		}
		if origin == nil || origin.Available.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		unitCost := origin.UnitCost
		exitMov := &entity.StockMovement{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			ProductID:   in.ProductID,
			BranchID:    in.FromBranchID,
			LotNumber:   in.LotNumber,
			Type:        entity.MovementExitTransfer,
			Quantity:    in.Quantity,
			UnitCost:    &unitCost,
			State:       entity.MovementStateConfirmed,
			TransferID:  result.TransferID,
			CreatedAt:   now,
			CreatedBy:   userID,
			ConfirmedAt: &now,
			ConfirmedBy: userID,
		}
		if err := domledger.Apply(origin, exitMov, now); err != nil {
			return err
		}
		if err := recordRepo.Save(origin); err != nil {
			return err
		}
		if err := movRepo.Create(exitMov); err != nil {
			return err
		}

		entryMov := &entity.StockMovement{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			ProductID:       in.ProductID,
			BranchID:        in.ToBranchID,
			LotNumber:       in.LotNumber,
			Type:            entity.MovementEntryTransfer,
			Quantity:        in.Quantity,
			UnitCost:        &unitCost,
			ManufactureDate: origin.ManufactureDate,
			ExpiryDate:      origin.ExpiryDate,
			State:           entity.MovementStateConfirmed,
			TransferID:      result.TransferID,
			CreatedAt:       now,
			CreatedBy:       userID,
			ConfirmedAt:     &now,
			ConfirmedBy:     userID,
		}
		dest, err := lockOrCreateRecord(recordRepo, entryMov, now)
		if err != nil {
			return err
		}
		if err := domledger.Apply(dest, entryMov, now); err != nil {
			return err
		}
		if err := recordRepo.Save(dest); err != nil {
			return err
		}
		if err := movRepo.Create(entryMov); err != nil {
			return err
		}

		result.Exit = exitMov
		result.Entry = entryMov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
