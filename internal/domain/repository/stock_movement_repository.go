package repository

import (
	"time"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Los movimientos son append-only: Save solo se usa para la
// transición de estado y las fotos before/after al confirmar.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	Save(m *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// GetByIDForUpdate bloquea la fila del movimiento durante la confirmación.
	GetByIDForUpdate(id string) (*entity.StockMovement, error)
	ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByBranch(companyID, branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
