package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

// LedgerValuation totales de valorización del inventario de una empresa.
type LedgerValuation struct {
	AtCost        decimal.Decimal // Σ on_hand × unit_cost
	AtMarketValue decimal.Decimal // Σ on_hand × market_value
	RecordCount   int64
}

// LedgerStatsRepository consultas de solo lectura sobre los registros de
// stock (agregados sin riesgo de invariantes).
type LedgerStatsRepository interface {
	CountBelowMinimum(ctx context.Context, companyID string) (int64, error)
	CountNegative(ctx context.Context, companyID string) (int64, error)
	ListNearExpiry(ctx context.Context, companyID string, until time.Time, limit int) ([]*entity.StockRecord, error)
	Valuation(ctx context.Context, companyID string) (*LedgerValuation, error)
}
