package http

import (
	"github.com/jcastrillon/farmastock-api/internal/application/dto"
	"github.com/jcastrillon/farmastock-api/internal/domain/entity"
)

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		BranchID:       m.BranchID,
		LotNumber:      m.LotNumber,
		Type:           m.Type,
		Category:       m.Category(),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		UnitCost:       m.UnitCost,
		State:          m.State,
		TransferID:     m.TransferID,
		AdjustmentID:   m.AdjustmentID,
		DocumentNumber: m.DocumentNumber,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
		ConfirmedAt:    m.ConfirmedAt,
		ConfirmedBy:    m.ConfirmedBy,
	}
}

func toAdjustmentResponse(a *entity.StockAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		BranchID:       a.BranchID,
		LotNumber:      a.LotNumber,
		AdjustmentType: a.AdjustmentType,
		Quantity:       a.Quantity,
		QuantityBefore: a.QuantityBefore,
		QuantityNew:    a.QuantityNew,
		Reason:         a.Reason,
		State:          a.State,
		MovementID:     a.MovementID,
		CreatedAt:      a.CreatedAt,
		ConfirmedAt:    a.ConfirmedAt,
	}
}

func toRecordResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		BranchID:         r.BranchID,
		WarehouseID:      r.WarehouseID,
		LotNumber:        r.LotNumber,
		OnHand:           r.OnHand,
		Reserved:         r.Reserved,
		Available:        r.Available,
		Minimum:          r.Minimum,
		Maximum:          r.Maximum,
		Critical:         r.Critical,
		UnitCost:         r.UnitCost,
		TotalCost:        r.TotalCost,
		MarketValue:      r.MarketValue,
		ManufactureDate:  r.ManufactureDate,
		ExpiryDate:       r.ExpiryDate,
		Status:           r.Status,
		BelowMinimum:     r.BelowMinimum(),
		LastMovementAt:   r.LastMovementAt,
		LastMovementType: r.LastMovementType,
		Observations:     r.Observations,
	}
}
