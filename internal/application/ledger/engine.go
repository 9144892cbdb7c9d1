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

// Engine es la única autoridad para mutar los contadores de StockRecord.
// Registra movimientos en pending y los aplica al confirmarlos, dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type Engine struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewEngine construye el motor de inventario.
func NewEngine(txRunner TxRunner, productRepo repository.ProductRepository, branchRepo repository.BranchRepository) *Engine {
	return &Engine{txRunner: txRunner, productRepo: productRepo, branchRepo: branchRepo}
}

// MovementInput entrada para registrar un movimiento de inventario.
type MovementInput struct {
	CompanyID       string
	UserID          string
	ProductID       string
	BranchID        string
	LotNumber       string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	ProviderID      string
	ClientID        string
	SaleID          string
	PurchaseID      string
	DocumentNumber  string
	DocumentType    string
	Reason          string
}

// RegisterMovement valida la entrada y persiste un movimiento en estado
// pending. No afecta contadores: eso ocurre al confirmar.
func (e *Engine) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ProductID == "" || input.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.ManufactureDate != nil && input.ExpiryDate != nil && input.ExpiryDate.Before(*input.ManufactureDate) {
		return nil, domain.ErrInvalidInput
	}

	product, err := e.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}
	if product.RequiresLot && input.LotNumber == "" && entity.MovementCategory(input.Type) == entity.CategoryEntry {
		return nil, domain.ErrInvalidInput
	}
	branch, err := e.branchRepo.GetByID(input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != input.CompanyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		CompanyID:       input.CompanyID,
		ProductID:       input.ProductID,
		BranchID:        input.BranchID,
		LotNumber:       input.LotNumber,
		Type:            input.Type,
		Quantity:        input.Quantity,
		UnitCost:        input.UnitCost,
		State:           entity.MovementStatePending,
		ManufactureDate: input.ManufactureDate,
		ExpiryDate:      input.ExpiryDate,
		ProviderID:      input.ProviderID,
		ClientID:        input.ClientID,
		SaleID:          input.SaleID,
		PurchaseID:      input.PurchaseID,
		DocumentNumber:  input.DocumentNumber,
		DocumentType:    input.DocumentType,
		Reason:          input.Reason,
		CreatedAt:       now,
		CreatedBy:       input.UserID,
	}

	err = e.txRunner.Run(ctx, func(
		_ repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ConfirmMovement transiciona un movimiento pending → confirmed y lo aplica
// sobre el registro de stock en la misma transacción. Confirmar dos veces
// devuelve ErrImmutableState sin re-aplicar el delta; un movimiento anulado
// devuelve ErrInvalidState.
func (e *Engine) ConfirmMovement(ctx context.Context, companyID, movementID, userID string) (*entity.StockMovement, error) {
	var confirmed *entity.StockMovement
	err := e.txRunner.Run(ctx, func(
		recordRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		mov, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil || mov.CompanyID != companyID {
			return domain.ErrNotFound
		}
		switch mov.State {
		case entity.MovementStateConfirmed:
			return domain.ErrImmutableState
		case entity.MovementStateVoided, entity.MovementStateReversed:
			return domain.ErrInvalidState
		}
		if !entity.ValidMovementTransition(mov.State, entity.MovementStateConfirmed) {
			return domain.ErrInvalidState
		}

		now := time.Now()
		mov.State = entity.MovementStateConfirmed
		mov.ConfirmedAt = &now
		mov.ConfirmedBy = userID

		rec, err := lockOrCreateRecord(recordRepo, mov, now)
		if err != nil {
			return err
		}
		if err := domledger.Apply(rec, mov, now); err != nil {
			return err
		}
		if err := recordRepo.Save(rec); err != nil {
			return err
		}
		if err := movRepo.Save(mov); err != nil {
			return err
		}
		confirmed = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// VoidMovement anula un movimiento pending. Un movimiento confirmado es
// inmutable: debe emitirse un movimiento correctivo en su lugar.
func (e *Engine) VoidMovement(ctx context.Context, companyID, movementID, userID string) error {
	return e.txRunner.Run(ctx, func(
		_ repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		mov, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil || mov.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if mov.State == entity.MovementStateConfirmed {
			return domain.ErrImmutableState
		}
		if !entity.ValidMovementTransition(mov.State, entity.MovementStateVoided) {
			return domain.ErrInvalidState
		}
		mov.State = entity.MovementStateVoided
		return movRepo.Save(mov)
	})
}

// DeleteRecord elimina un registro de stock. Se rechaza con ErrRecordHasStock
// mientras OnHand sea distinto de cero.
func (e *Engine) DeleteRecord(ctx context.Context, companyID, recordID string) error {
	return e.txRunner.Run(ctx, func(
		recordRepo repository.StockRecordRepository,
		_ repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		rec, err := recordRepo.GetByID(recordID)
		if err != nil {
			return err
		}
		if rec == nil || rec.CompanyID != companyID {
			return domain.ErrNotFound
		}
		// Re-lee con bloqueo por identidad para serializar contra confirmaciones.
		rec, err = recordRepo.GetForUpdate(rec.CompanyID, rec.ProductID, rec.BranchID, rec.LotNumber)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if !rec.OnHand.IsZero() {
			return domain.ErrRecordHasStock
		}
		return recordRepo.Delete(rec.ID)
	})
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (e *Engine) RegisterMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*entity.StockMovement, error) {
	return e.RegisterMovement(ctx, MovementInput{
		CompanyID:       companyID,
		UserID:          userID,
		ProductID:       in.ProductID,
		BranchID:        in.BranchID,
		LotNumber:       in.LotNumber,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		ManufactureDate: in.ManufactureDate,
		ExpiryDate:      in.ExpiryDate,
		ProviderID:      in.ProviderID,
		ClientID:        in.ClientID,
		SaleID:          in.SaleID,
		PurchaseID:      in.PurchaseID,
		DocumentNumber:  in.DocumentNumber,
		DocumentType:    in.DocumentType,
		Reason:          in.Reason,
	})
}

// lockOrCreateRecord bloquea el registro destino del movimiento o lo crea en
// cero si la identidad (producto, sucursal, lote) aún no existe.
func lockOrCreateRecord(recordRepo repository.StockRecordRepository, mov *entity.StockMovement, now time.Time) (*entity.StockRecord, error) {
	rec, err := recordRepo.GetForUpdate(mov.CompanyID, mov.ProductID, mov.BranchID, mov.LotNumber)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	rec = domledger.NewRecord(mov.CompanyID, mov.ProductID, mov.BranchID, "", mov.LotNumber, now)
	rec.ID = uuid.New().String()
	rec.ManufactureDate = mov.ManufactureDate
	rec.ExpiryDate = mov.ExpiryDate
	if !rec.ValidLotDates() {
		return nil, domain.ErrInvalidInput
	}
	if err := recordRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
