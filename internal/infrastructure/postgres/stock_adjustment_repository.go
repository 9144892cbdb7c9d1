package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const stockAdjustmentColumns = `
	id, company_id, product_id, branch_id, lot_number,
	adjustment_type, quantity, quantity_before, quantity_new, reason,
	state, movement_id,
	created_at, created_by, confirmed_at, confirmed_by, voided_at, voided_by`

func scanStockAdjustment(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	var lot, movementID, createdBy, confirmedBy, voidedBy *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.ProductID, &a.BranchID, &lot,
		&a.AdjustmentType, &a.Quantity, &a.QuantityBefore, &a.QuantityNew, &a.Reason,
		&a.State, &movementID,
		&a.CreatedAt, &createdBy, &a.ConfirmedAt, &confirmedBy, &a.VoidedAt, &voidedBy,
	)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		a.LotNumber = *lot
	}
	if movementID != nil {
		a.MovementID = *movementID
	}
	if createdBy != nil {
		a.CreatedBy = *createdBy
	}
	if confirmedBy != nil {
		a.ConfirmedBy = *confirmedBy
	}
	if voidedBy != nil {
		a.VoidedBy = *voidedBy
	}
	return &a, nil
}

// Create persiste un documento de ajuste.
func (r *StockAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (` + stockAdjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.ProductID, a.BranchID, nullable(a.LotNumber),
		a.AdjustmentType, a.Quantity, a.QuantityBefore, a.QuantityNew, a.Reason,
		a.State, nullable(a.MovementID),
		a.CreatedAt, nullable(a.CreatedBy), a.ConfirmedAt, nullable(a.ConfirmedBy), a.VoidedAt, nullable(a.VoidedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// Save actualiza el estado y las cantidades resultantes del ajuste.
func (r *StockAdjustmentRepo) Save(a *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments SET
			quantity_before = $2, quantity_new = $3, state = $4, movement_id = $5,
			confirmed_at = $6, confirmed_by = $7, voided_at = $8, voided_by = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.QuantityBefore, a.QuantityNew, a.State, nullable(a.MovementID),
		a.ConfirmedAt, nullable(a.ConfirmedBy), a.VoidedAt, nullable(a.VoidedBy),
	)
	if err != nil {
		return fmt.Errorf("save stock adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GetByID obtiene un ajuste por ID. Devuelve nil sin error si no existe.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + stockAdjustmentColumns + ` FROM stock_adjustments WHERE id = $1`
	a, err := scanStockAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// GetByIDForUpdate bloquea la fila del ajuste durante confirmación/anulación.
func (r *StockAdjustmentRepo) GetByIDForUpdate(id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + stockAdjustmentColumns + ` FROM stock_adjustments WHERE id = $1 FOR UPDATE`
	a, err := scanStockAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment for update: %w", err)
	}
	return a, nil
}

// ListByBranch lista los ajustes de una sucursal, los más recientes primero.
func (r *StockAdjustmentRepo) ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + stockAdjustmentColumns + `
		FROM stock_adjustments
		WHERE company_id = $1 AND branch_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*entity.StockAdjustment
	for rows.Next() {
		a, err := scanStockAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}
