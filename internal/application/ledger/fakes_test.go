package ledger_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. No simulan bloqueo de
// filas: los casos de uso corren secuencialmente en los tests.

type fakeRecordRepo struct {
	byID map[string]*entity.StockRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{byID: map[string]*entity.StockRecord{}}
}

func (r *fakeRecordRepo) find(companyID, productID, branchID, lotNumber string) *entity.StockRecord {
	for _, rec := range r.byID {
		if rec.CompanyID == companyID && rec.ProductID == productID &&
			rec.BranchID == branchID && rec.LotNumber == lotNumber {
			return rec
		}
	}
	return nil
}

func (r *fakeRecordRepo) Get(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error) {
	return r.find(companyID, productID, branchID, lotNumber), nil
}

func (r *fakeRecordRepo) GetForUpdate(companyID, productID, branchID, lotNumber string) (*entity.StockRecord, error) {
	return r.find(companyID, productID, branchID, lotNumber), nil
}

func (r *fakeRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	return r.byID[id], nil
}

func (r *fakeRecordRepo) Create(rec *entity.StockRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *fakeRecordRepo) Save(rec *entity.StockRecord) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *fakeRecordRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeRecordRepo) ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.byID {
		if rec.CompanyID == companyID && rec.BranchID == branchID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListByProduct(companyID, productID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.byID {
		if rec.CompanyID == companyID && rec.ProductID == productID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	byID map[string]*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{byID: map[string]*entity.StockMovement{}}
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.byID[m.ID] = m
	return nil
}

func (r *fakeMovementRepo) Save(m *entity.StockMovement) error {
	r.byID[m.ID] = m
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.byID[id], nil
}

func (r *fakeMovementRepo) GetByIDForUpdate(id string) (*entity.StockMovement, error) {
	return r.byID[id], nil
}

func (r *fakeMovementRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.byID {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByBranch(companyID, branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.byID {
		if m.CompanyID == companyID && m.BranchID == branchID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAdjustmentRepo struct {
	byID map[string]*entity.StockAdjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{byID: map[string]*entity.StockAdjustment{}}
}

func (r *fakeAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAdjustmentRepo) Save(a *entity.StockAdjustment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	return r.byID[id], nil
}

func (r *fakeAdjustmentRepo) GetByIDForUpdate(id string) (*entity.StockAdjustment, error) {
	return r.byID[id], nil
}

func (r *fakeAdjustmentRepo) ListByBranch(companyID, branchID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.byID {
		if a.CompanyID == companyID && a.BranchID == branchID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *fakeProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.byID[p.ID] = p; return nil }
func (r *fakeProductRepo) List(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeBranchRepo struct {
	byID map[string]*entity.Branch
}

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{byID: map[string]*entity.Branch{}}
	for _, b := range branches {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) Create(b *entity.Branch) error { r.byID[b.ID] = b; return nil }
func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return r.byID[id], nil
}
func (r *fakeBranchRepo) List(companyID string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range r.byID {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes, sin
// transacción real.
type fakeTxRunner struct {
	records     *fakeRecordRepo
	movements   *fakeMovementRepo
	adjustments *fakeAdjustmentRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	recordRepo repository.StockRecordRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	return fn(r.records, r.movements, r.adjustments)
}

// testEnv agrupa los fakes y los datos base (empresa, producto, dos sucursales).
type testEnv struct {
	records     *fakeRecordRepo
	movements   *fakeMovementRepo
	adjustments *fakeAdjustmentRepo
	products    *fakeProductRepo
	branches    *fakeBranchRepo
	txRunner    *fakeTxRunner
}

const (
	envCompanyID = "co-1"
	envProductID = "prod-1"
	envBranchA   = "branch-a"
	envBranchB   = "branch-b"
	envUserID    = "user-1"
)

func newTestEnv() *testEnv {
	records := newFakeRecordRepo()
	movements := newFakeMovementRepo()
	adjustments := newFakeAdjustmentRepo()
	products := newFakeProductRepo(&entity.Product{
		ID:        envProductID,
		CompanyID: envCompanyID,
		SKU:       "ACETA-500",
		Name:      "Acetaminofén 500mg",
	})
	branches := newFakeBranchRepo(
		&entity.Branch{ID: envBranchA, CompanyID: envCompanyID, Name: "Sucursal Centro"},
		&entity.Branch{ID: envBranchB, CompanyID: envCompanyID, Name: "Sucursal Norte"},
	)
	return &testEnv{
		records:     records,
		movements:   movements,
		adjustments: adjustments,
		products:    products,
		branches:    branches,
		txRunner:    &fakeTxRunner{records: records, movements: movements, adjustments: adjustments},
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
