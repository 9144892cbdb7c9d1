package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `
	id, company_id, product_id, branch_id, warehouse_id,
	on_hand, reserved, available, minimum, maximum, critical,
	unit_cost, total_cost, market_value,
	lot_number, manufacture_date, expiry_date,
	status, last_movement_at, last_movement_type, observations,
	created_at, updated_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var r entity.StockRecord
	var lastType, observations *string
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.ProductID, &r.BranchID, &r.WarehouseID,
		&r.OnHand, &r.Reserved, &r.Available, &r.Minimum, &r.Maximum, &r.Critical,
		&r.UnitCost, &r.TotalCost, &r.MarketValue,
		&r.LotNumber, &r.ManufactureDate, &r.ExpiryDate,
		&r.Status, &r.LastMovementAt, &lastType, &observations,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastType != nil {
		r.LastMovementType = *lastType
	}
	if observations != nil {
		r.Observations = *observations
	}
	return &r, nil
}

// Get obtiene el registro por identidad (empresa, producto, sucursal, lote).
// Devuelve nil sin error si no existe todavía.
func (r *StockRecordRepo) Get(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records
		WHERE company_id = $1 AND product_id = $2 AND branch_id = $3 AND lot_number = $4`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, companyID, productID, branchID, lotNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE) para
// serializar las mutaciones sobre la misma identidad.
func (r *StockRecordRepo) GetForUpdate(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records
		WHERE company_id = $1 AND product_id = $2 AND branch_id = $3 AND lot_number = $4
		FOR UPDATE`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, companyID, productID, branchID, lotNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return rec, nil
}

// GetByID obtiene el registro por su ID. Devuelve nil sin error si no existe.
func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE id = $1`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record by id: %w", err)
	}
	return rec, nil
}

// Create persiste un registro nuevo (contadores en cero del primer movimiento).
func (r *StockRecordRepo) Create(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.CompanyID, rec.ProductID, rec.BranchID, rec.WarehouseID,
		rec.OnHand, rec.Reserved, rec.Available, rec.Minimum, rec.Maximum, rec.Critical,
		rec.UnitCost, rec.TotalCost, rec.MarketValue,
		rec.LotNumber, rec.ManufactureDate, rec.ExpiryDate,
		rec.Status, rec.LastMovementAt, nullable(rec.LastMovementType), nullable(rec.Observations),
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// Save actualiza los contadores y metadatos de un registro existente.
func (r *StockRecordRepo) Save(rec *entity.StockRecord) error {
	query := `
		UPDATE stock_records SET
			warehouse_id = $2, on_hand = $3, reserved = $4, available = $5,
			minimum = $6, maximum = $7, critical = $8,
			unit_cost = $9, total_cost = $10, market_value = $11,
			manufacture_date = $12, expiry_date = $13,
			status = $14, last_movement_at = $15, last_movement_type = $16,
			observations = $17, updated_at = $18
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.WarehouseID, rec.OnHand, rec.Reserved, rec.Available,
		rec.Minimum, rec.Maximum, rec.Critical,
		rec.UnitCost, rec.TotalCost, rec.MarketValue,
		rec.ManufactureDate, rec.ExpiryDate,
		rec.Status, rec.LastMovementAt, nullable(rec.LastMovementType),
		nullable(rec.Observations), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro por ID. El caso de uso valida antes OnHand == 0.
func (r *StockRecordRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByBranch lista los registros de una sucursal.
func (r *StockRecordRepo) ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records
		WHERE company_id = $1 AND branch_id = $2
		ORDER BY product_id, lot_number
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records by branch: %w", err)
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

// ListByProduct lista los registros de un producto en todas las sucursales.
func (r *StockRecordRepo) ListByProduct(companyID, productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records
		WHERE company_id = $1 AND product_id = $2
		ORDER BY branch_id, lot_number`
	rows, err := r.q.Query(context.Background(), query, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock records by product: %w", err)
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

func collectStockRecords(rows pgx.Rows) ([]*entity.StockRecord, error) {
	var records []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// nullable convierte "" en NULL para columnas de texto opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
