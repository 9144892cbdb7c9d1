package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// El movimiento nace en estado pending; no afecta contadores hasta confirmarse.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id"`
	BranchID        string           `json:"branch_id"`
	LotNumber       string           `json:"lot_number,omitempty"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ManufactureDate *time.Time       `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	ProviderID      string           `json:"provider_id,omitempty"`
	ClientID        string           `json:"client_id,omitempty"`
	SaleID          string           `json:"sale_id,omitempty"`
	PurchaseID      string           `json:"purchase_id,omitempty"`
	DocumentNumber  string           `json:"document_number,omitempty"`
	DocumentType    string           `json:"document_type,omitempty"`
	Reason          string           `json:"reason,omitempty"`
}

// MovementResponse representación de un movimiento del libro.
type MovementResponse struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	BranchID       string           `json:"branch_id"`
	LotNumber      string           `json:"lot_number,omitempty"`
	Type           string           `json:"type"`
	Category       string           `json:"category"`
	Quantity       decimal.Decimal  `json:"quantity"`
	QuantityBefore decimal.Decimal  `json:"quantity_before"`
	QuantityAfter  decimal.Decimal  `json:"quantity_after"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	State          string           `json:"state"`
	TransferID     string           `json:"transfer_id,omitempty"`
	AdjustmentID   string           `json:"adjustment_id,omitempty"`
	DocumentNumber string           `json:"document_number,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	CreatedBy      string           `json:"created_by,omitempty"`
	ConfirmedAt    *time.Time       `json:"confirmed_at,omitempty"`
	ConfirmedBy    string           `json:"confirmed_by,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
// Para correccion, quantity_new es el valor absoluto final de on_hand.
type CreateAdjustmentRequest struct {
	ProductID      string          `json:"product_id"`
	BranchID       string          `json:"branch_id"`
	LotNumber      string          `json:"lot_number,omitempty"`
	AdjustmentType string          `json:"adjustment_type"` // entrada, salida, correccion
	Quantity       decimal.Decimal `json:"quantity,omitempty"`
	QuantityNew    decimal.Decimal `json:"quantity_new,omitempty"`
	Reason         string          `json:"reason"`
}

// AdjustmentResponse representación del documento de ajuste.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	BranchID       string          `json:"branch_id"`
	LotNumber      string          `json:"lot_number,omitempty"`
	AdjustmentType string          `json:"adjustment_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityNew    decimal.Decimal `json:"quantity_new"`
	Reason         string          `json:"reason"`
	State          string          `json:"state"`
	MovementID     string          `json:"movement_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID    string          `json:"product_id"`
	FromBranchID string          `json:"from_branch_id"`
	ToBranchID   string          `json:"to_branch_id"`
	LotNumber    string          `json:"lot_number,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// PhysicalCountRequest body para POST /api/inventory/physical-count.
type PhysicalCountRequest struct {
	ProductID       string          `json:"product_id"`
	BranchID        string          `json:"branch_id"`
	LotNumber       string          `json:"lot_number,omitempty"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Observations    string          `json:"observations,omitempty"`
}

// StockRecordResponse representación de un registro de stock.
type StockRecordResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	BranchID         string          `json:"branch_id"`
	WarehouseID      string          `json:"warehouse_id,omitempty"`
	LotNumber        string          `json:"lot_number,omitempty"`
	OnHand           decimal.Decimal `json:"on_hand"`
	Reserved         decimal.Decimal `json:"reserved"`
	Available        decimal.Decimal `json:"available"`
	Minimum          decimal.Decimal `json:"minimum"`
	Maximum          decimal.Decimal `json:"maximum"`
	Critical         decimal.Decimal `json:"critical"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	MarketValue      decimal.Decimal `json:"market_value"`
	ManufactureDate  *time.Time      `json:"manufacture_date,omitempty"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Status           string          `json:"status"`
	BelowMinimum     bool            `json:"below_minimum"`
	LastMovementAt   *time.Time      `json:"last_movement_at,omitempty"`
	LastMovementType string          `json:"last_movement_type,omitempty"`
	Observations     string          `json:"observations,omitempty"`
}

// LedgerStatsResponse agregados de inventario para el dashboard.
type LedgerStatsResponse struct {
	BelowMinimum  int64           `json:"below_minimum"`
	NegativeStock int64           `json:"negative_stock"`
	NearExpiry    int             `json:"near_expiry"`
	AtCost        decimal.Decimal `json:"valuation_at_cost"`
	AtMarketValue decimal.Decimal `json:"valuation_at_market"`
	RecordCount   int64           `json:"record_count"`
}
