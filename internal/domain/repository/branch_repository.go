package repository

import "github.com/jcastrillon/farmastock-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia de sucursales.
type BranchRepository interface {
	Create(b *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	List(companyID string) ([]*entity.Branch, error)
}
