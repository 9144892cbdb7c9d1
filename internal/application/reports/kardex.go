package reports

import (
	"context"
	"time"

	"github.com/jcastrillon/farmastock-api/internal/domain"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
	"github.com/jcastrillon/farmastock-api/internal/domain/repository"
)

// KardexPDFGenerator puerto de generación del PDF del kardex.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, company *entity.Company, product *entity.Product, movements []*entity.StockMovement) ([]byte, error)
}

// KardexUseCase genera el kardex (historial de movimientos con fotos
// before/after) de un producto en PDF.
type KardexUseCase struct {
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	generator   KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso del kardex.
func NewKardexUseCase(
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	generator KardexPDFGenerator,
) *KardexUseCase {
	return &KardexUseCase{
		companyRepo: companyRepo,
		productRepo: productRepo,
		movRepo:     movRepo,
		generator:   generator,
	}
}

// GenerateForProduct arma el PDF con los movimientos del producto en el rango
// dado (ambos extremos opcionales).
func (uc *KardexUseCase) GenerateForProduct(ctx context.Context, companyID, productID string, from, to *time.Time) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	movements, err := uc.movRepo.ListByProduct(companyID, productID, from, to, 500, 0)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateKardexPDF(ctx, company, product, movements)
}
