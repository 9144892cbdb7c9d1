package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastrillon/farmastock-api/internal/application/ledger"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// fakeStatsRepo agrega en memoria sobre un conjunto fijo de registros.
type fakeStatsRepo struct {
	records []*entity.StockRecord
}

func (r *fakeStatsRepo) CountBelowMinimum(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.CompanyID == companyID && rec.BelowMinimum() {
			n++
		}
	}
	return n, nil
}

func (r *fakeStatsRepo) CountNegative(_ context.Context, companyID string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.CompanyID == companyID && rec.OnHand.IsNegative() {
			n++
		}
	}
	return n, nil
}

func (r *fakeStatsRepo) ListNearExpiry(_ context.Context, companyID string, until time.Time, limit int) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if rec.CompanyID == companyID && rec.ExpiryDate != nil && !rec.ExpiryDate.After(until) && rec.OnHand.IsPositive() {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeStatsRepo) Valuation(_ context.Context, companyID string) (*repository.LedgerValuation, error) {
	v := &repository.LedgerValuation{}
	for _, rec := range r.records {
		if rec.CompanyID != companyID {
			continue
		}
		v.AtCost = v.AtCost.Add(rec.OnHand.Mul(rec.UnitCost))
		v.AtMarketValue = v.AtMarketValue.Add(rec.OnHand.Mul(rec.MarketValue))
		v.RecordCount++
	}
	return v, nil
}

func TestStats_Summary(t *testing.T) {
	soon := time.Now().Add(10 * 24 * time.Hour)
	far := time.Now().Add(120 * 24 * time.Hour)
	repo := &fakeStatsRepo{records: []*entity.StockRecord{
		{CompanyID: envCompanyID, OnHand: dec("10"), Minimum: dec("20"), UnitCost: dec("2.00"), MarketValue: dec("3.00")},
		{CompanyID: envCompanyID, OnHand: dec("-5"), UnitCost: dec("1.00")},
		{CompanyID: envCompanyID, OnHand: dec("8"), UnitCost: dec("4.00"), ExpiryDate: &soon},
		{CompanyID: envCompanyID, OnHand: dec("8"), UnitCost: dec("4.00"), ExpiryDate: &far},
		{CompanyID: "otra-empresa", OnHand: dec("-1")},
	}}
	uc := ledger.NewStatsUseCase(repo)

	out, err := uc.Summary(context.Background(), envCompanyID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.BelowMinimum)
	assert.Equal(t, int64(1), out.NegativeStock)
	assert.Equal(t, 1, out.NearExpiry, "solo el lote que vence dentro de 30 días cuenta")
	assert.Equal(t, int64(4), out.RecordCount)
	// 10*2.00 + (-5)*1.00 + 8*4.00 + 8*4.00 = 79.00
	assert.True(t, out.AtCost.Equal(dec("79.00")), "la valorización incluye el stock negativo")
}
