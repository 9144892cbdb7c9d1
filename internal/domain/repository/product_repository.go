package repository

import "github.com/jcastrillon/farmastock-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia de productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(companyID, sku string) (*entity.Product, error)
	Update(p *entity.Product) error
	List(companyID string, limit, offset int) ([]*entity.Product, error)
}
