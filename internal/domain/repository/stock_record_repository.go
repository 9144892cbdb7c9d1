package repository

import "github.com/jcastrillon/farmastock-api/internal/domain/entity"

// StockRecordRepository define el puerto de persistencia del stock por
// (producto, sucursal, lote). Usado dentro de transacciones para garantizar
// consistencia; GetForUpdate bloquea la fila (SELECT FOR UPDATE).
type StockRecordRepository interface {
	// Get devuelve nil (sin error) si la identidad no existe todavía.
	Get(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error)
	GetForUpdate(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error)
	GetByID(id string) (*entity.StockRecord, error)
	Create(rec *entity.StockRecord) error
	Save(rec *entity.StockRecord) error
	// Delete elimina el registro; el caso de uso valida antes que OnHand == 0.
	Delete(id string) error
	ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockRecord, error)
	ListByProduct(companyID, productID string) ([]*entity.StockRecord, error)
}
