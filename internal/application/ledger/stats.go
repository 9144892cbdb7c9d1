package ledger

import (
	"context"
	"time"

	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// Horizonte de alerta de vencimiento para las estadísticas.
const expiryHorizon = 30 * 24 * time.Hour

// StatsUseCase superficie de consulta de solo lectura del inventario:
// conteos bajo mínimo, stock negativo, lotes por vencer y valorización.
type StatsUseCase struct {
	statsRepo repository.LedgerStatsRepository
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(statsRepo repository.LedgerStatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

// Summary agrega los indicadores del inventario de la empresa.
func (uc *StatsUseCase) Summary(ctx context.Context, companyID string) (*dto.LedgerStatsResponse, error) {
	belowMin, err := uc.statsRepo.CountBelowMinimum(ctx, companyID)
	if err != nil {
		return nil, err
	}
	negative, err := uc.statsRepo.CountNegative(ctx, companyID)
	if err != nil {
		return nil, err
	}
	until := time.Now().Add(expiryHorizon)
	nearExpiry, err := uc.statsRepo.ListNearExpiry(ctx, companyID, until, 500)
	if err != nil {
		return nil, err
	}
	valuation, err := uc.statsRepo.Valuation(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerStatsResponse{
		BelowMinimum:  belowMin,
		NegativeStock: negative,
		NearExpiry:    len(nearExpiry),
		AtCost:        valuation.AtCost,
		AtMarketValue: valuation.AtMarketValue,
		RecordCount:   valuation.RecordCount,
	}, nil
}

// NearExpiry devuelve los lotes que vencen dentro del horizonte de 30 días.
func (uc *StatsUseCase) NearExpiry(ctx context.Context, companyID string, limit int) ([]*entity.StockRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	until := time.Now().Add(expiryHorizon)
	return uc.statsRepo.ListNearExpiry(ctx, companyID, until, limit)
}
