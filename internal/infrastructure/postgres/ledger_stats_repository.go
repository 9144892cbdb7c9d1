package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

var _ repository.LedgerStatsRepository = (*LedgerStatsRepo)(nil)

// LedgerStatsRepo consultas de solo lectura sobre stock_records: agregados
// de alertas y valorización del inventario.
type LedgerStatsRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerStatsRepository construye el adaptador de estadísticas.
func NewLedgerStatsRepository(pool *pgxpool.Pool) *LedgerStatsRepo {
	return &LedgerStatsRepo{pool: pool}
}

// CountBelowMinimum cuenta los registros con OnHand bajo su umbral mínimo.
func (r *LedgerStatsRepo) CountBelowMinimum(ctx context.Context, companyID string) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM stock_records
	WHERE company_id = $1
	  AND minimum > 0
	  AND on_hand < minimum`
	var count int64
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("stats.CountBelowMinimum: %w", err)
	}
	return count, nil
}

// CountNegative cuenta los registros con OnHand negativo (salidas sin piso).
func (r *LedgerStatsRepo) CountNegative(ctx context.Context, companyID string) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM stock_records
	WHERE company_id = $1
	  AND on_hand < 0`
	var count int64
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("stats.CountNegative: %w", err)
	}
	return count, nil
}

// ListNearExpiry devuelve los registros con lote que vence hasta la fecha
// dada, los más próximos primero.
func (r *LedgerStatsRepo) ListNearExpiry(ctx context.Context, companyID string, until time.Time, limit int) ([]*entity.StockRecord, error) {
	query := `
	SELECT ` + stockRecordColumns + `
	FROM stock_records
	WHERE company_id = $1
	  AND expiry_date IS NOT NULL
	  AND expiry_date <= $2
	  AND on_hand > 0
	ORDER BY expiry_date ASC
	LIMIT $3`
	rows, err := r.pool.Query(ctx, query, companyID, until, limit)
	if err != nil {
		return nil, fmt.Errorf("stats.ListNearExpiry: %w", err)
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

// Valuation totaliza Σ on_hand × unit_cost y Σ on_hand × market_value.
// COALESCE devuelve cero si la empresa no tiene registros.
func (r *LedgerStatsRepo) Valuation(ctx context.Context, companyID string) (*repository.LedgerValuation, error) {
	const query = `
	SELECT
	    COALESCE(SUM(on_hand * unit_cost),    0) AS at_cost,
	    COALESCE(SUM(on_hand * market_value), 0) AS at_market,
	    COUNT(*)                                 AS record_count
	FROM stock_records
	WHERE company_id = $1`
	var v repository.LedgerValuation
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&v.AtCost, &v.AtMarketValue, &v.RecordCount); err != nil {
		return nil, fmt.Errorf("stats.Valuation: %w", err)
	}
	return &v, nil
}
