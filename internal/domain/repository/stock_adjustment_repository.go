package repository

import "github.com/jcastrillon/farmastock-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto de persistencia de los
// documentos de ajuste manual.
type StockAdjustmentRepository interface {
	Create(a *entity.StockAdjustment) error
	Save(a *entity.StockAdjustment) error
	GetByID(id string) (*entity.StockAdjustment, error)
	GetByIDForUpdate(id string) (*entity.StockAdjustment, error)
	ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
