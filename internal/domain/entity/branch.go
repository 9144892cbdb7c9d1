package entity

import "time"

// Branch representa una sucursal (punto de venta) con su bodega asociada.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
