package ledger

import (
	"context"

	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: cualquier error revierte la transacción completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.StockRecordRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
