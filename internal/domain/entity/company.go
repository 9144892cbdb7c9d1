package entity

import "time"

// Company representa la empresa (tenant) dueña de sucursales, productos y stock.
type Company struct {
	ID        string
	Name      string
	NIT       string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
