package models

import (
	"wms-ledger/types"
)

type MovementType string

const (
	MovementReceive        MovementType = "RECEIVE"
	MovementReserve        MovementType = "RESERVE"
	MovementUnreserve      MovementType = "UNRESERVE"
	MovementQuarantineMove MovementType = "QUARANTINE_MOVE"
	MovementAdjustment     MovementType = "ADJUSTMENT"
	MovementCycleCount     MovementType = "CYCLE_COUNT"
	MovementTransfer       MovementType = "TRANSFER"
)

// MovementEntry is one immutable row of the stock ledger. Entries are only
// ever appended; a correction is a new entry, never an update.
type MovementEntry struct {
	ID           types.SnowflakeID `json:"id" gorm:"primaryKey"`
	TenantID     string            `json:"tenant_id" gorm:"index;not null"`
	WhsCode      string            `json:"whs_code" gorm:"index"`
	MovementType MovementType      `json:"movement_type" gorm:"not null"`
	SkuID        string            `json:"sku_id" gorm:"index;not null"`
	Qty          float64           `json:"qty" gorm:"not null"`
	Uom          string            `json:"uom"`
	FromLocation string            `json:"from_location"`
	ToLocation   string            `json:"to_location"`
	RefType      string            `json:"ref_type"`
	RefID        string            `json:"ref_id" gorm:"index"`
	ReasonCode   string            `json:"reason_code"`
	CreatedBy    int               `json:"created_by"`
	OccurredAt   string            `json:"occurred_at" gorm:"index"`
}

// MovementRequiresReason reports whether a movement type may not be posted
// without a valid reason code.
func MovementRequiresReason(t MovementType) bool {
	switch t {
	case MovementAdjustment, MovementCycleCount, MovementQuarantineMove:
		return true
	}
	return false
}

// IsReservation reports whether a movement type only affects the reserved
// quantity and is excluded from on-hand math.
func IsReservation(t MovementType) bool {
	return t == MovementReserve || t == MovementUnreserve
}

func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementReceive, MovementReserve, MovementUnreserve,
		MovementQuarantineMove, MovementAdjustment, MovementCycleCount, MovementTransfer:
		return true
	}
	return false
}
