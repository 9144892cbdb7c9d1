package repository

import "github.com/jcastrillon/farmastock-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia de empresas (tenants).
type CompanyRepository interface {
	Create(c *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
