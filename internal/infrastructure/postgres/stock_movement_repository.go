package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los movimientos confirmados nunca se eliminan: son el rastro de auditoría.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `
	id, company_id, product_id, branch_id, lot_number,
	type, quantity, quantity_before, quantity_after, unit_cost, new_quantity,
	state, manufacture_date, expiry_date,
	provider_id, client_id, sale_id, purchase_id, transfer_id, adjustment_id,
	document_number, document_type, reason,
	created_at, created_by, confirmed_at, confirmed_by`

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var lot, providerID, clientID, saleID, purchaseID, transferID, adjustmentID *string
	var docNumber, docType, reason, createdBy, confirmedBy *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.BranchID, &lot,
		&m.Type, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter, &m.UnitCost, &m.NewQuantity,
		&m.State, &m.ManufactureDate, &m.ExpiryDate,
		&providerID, &clientID, &saleID, &purchaseID, &transferID, &adjustmentID,
		&docNumber, &docType, &reason,
		&m.CreatedAt, &createdBy, &m.ConfirmedAt, &confirmedBy,
	)
	if err != nil {
		return nil, err
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&m.LotNumber, lot)
	assign(&m.ProviderID, providerID)
	assign(&m.ClientID, clientID)
	assign(&m.SaleID, saleID)
	assign(&m.PurchaseID, purchaseID)
	assign(&m.TransferID, transferID)
	assign(&m.AdjustmentID, adjustmentID)
	assign(&m.DocumentNumber, docNumber)
	assign(&m.DocumentType, docType)
	assign(&m.Reason, reason)
	assign(&m.CreatedBy, createdBy)
	assign(&m.ConfirmedBy, confirmedBy)
	return &m, nil
}

// Create persiste un movimiento del libro.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.ProductID, m.BranchID, nullable(m.LotNumber),
		m.Type, m.Quantity, m.QuantityBefore, m.QuantityAfter, m.UnitCost, m.NewQuantity,
		m.State, m.ManufactureDate, m.ExpiryDate,
		nullable(m.ProviderID), nullable(m.ClientID), nullable(m.SaleID), nullable(m.PurchaseID),
		nullable(m.TransferID), nullable(m.AdjustmentID),
		nullable(m.DocumentNumber), nullable(m.DocumentType), nullable(m.Reason),
		m.CreatedAt, nullable(m.CreatedBy), m.ConfirmedAt, nullable(m.ConfirmedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// Save actualiza estado y fotos before/after (solo la transición de confirmación/anulación).
func (r *StockMovementRepo) Save(m *entity.StockMovement) error {
	query := `
		UPDATE stock_movements SET
			quantity_before = $2, quantity_after = $3, state = $4,
			confirmed_at = $5, confirmed_by = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.QuantityBefore, m.QuantityAfter, m.State, m.ConfirmedAt, nullable(m.ConfirmedBy),
	)
	if err != nil {
		return fmt.Errorf("save stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil sin error si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanStockMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetByIDForUpdate bloquea la fila del movimiento durante la confirmación
// para que dos confirmaciones concurrentes no apliquen el delta dos veces.
func (r *StockMovementRepo) GetByIDForUpdate(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1 FOR UPDATE`
	m, err := scanStockMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(`company_id = $1 AND product_id = $2`, companyID, productID, from, to, limit, offset)
}

// ListByBranch lista movimientos de una sucursal en un rango de fechas.
func (r *StockMovementRepo) ListByBranch(companyID, branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(`company_id = $1 AND branch_id = $2`, companyID, branchID, from, to, limit, offset)
}

func (r *StockMovementRepo) list(where, arg1, arg2 string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE ` + where
	args := []any{arg1, arg2}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
