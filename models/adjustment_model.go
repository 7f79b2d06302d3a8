package models

import (
	"gorm.io/gorm"
)

type AdjustmentStatus string

const (
	AdjustmentDraft     AdjustmentStatus = "DRAFT"
	AdjustmentSubmitted AdjustmentStatus = "SUBMITTED"
	AdjustmentApproved  AdjustmentStatus = "APPROVED"
	AdjustmentRejected  AdjustmentStatus = "REJECTED"
	AdjustmentCancelled AdjustmentStatus = "CANCELLED"
)

// Adjustment is a single-line ad-hoc stock correction request. Approval posts
// exactly one ADJUSTMENT ledger entry for QtyDelta.
type Adjustment struct {
	gorm.Model
	Code         string           `json:"code" gorm:"unique"`
	TenantID     string           `json:"tenant_id" gorm:"index"`
	WhsCode      string           `json:"whs_code"`
	SkuID        string           `json:"sku_id"`
	LocationID   string           `json:"location_id"`
	QtyDelta     float64          `json:"qty_delta"`
	ReasonCode   string           `json:"reason_code"`
	Note         string           `json:"note"`
	Status       AdjustmentStatus `json:"status" gorm:"default:'DRAFT'"`
	CancelReason string           `json:"cancel_reason"`
	RequestedBy  int              `json:"requested_by"`
	SubmittedAt  string           `json:"submitted_at"`
	ApprovedBy   int              `json:"approved_by"`
	ApprovedAt   string           `json:"approved_at"`
}
