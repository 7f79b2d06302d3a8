package models

import (
	"gorm.io/gorm"
)

type CountPlanStatus string

const (
	CountPlanDraft      CountPlanStatus = "DRAFT"
	CountPlanInProgress CountPlanStatus = "IN_PROGRESS"
	CountPlanSubmitted  CountPlanStatus = "SUBMITTED"
	CountPlanApproved   CountPlanStatus = "APPROVED"
	CountPlanRejected   CountPlanStatus = "REJECTED"
	CountPlanCancelled  CountPlanStatus = "CANCELLED"
)

type CountLineStatus string

const (
	CountLinePending  CountLineStatus = "PENDING"
	CountLineCounted  CountLineStatus = "COUNTED"
	CountLineApproved CountLineStatus = "APPROVED"
)

type ScanMode string

const (
	ScanModeRfid    ScanMode = "RFID"
	ScanModeBarcode ScanMode = "BARCODE"
	ScanModeManual  ScanMode = "MANUAL"
)

type CountScopeType string

const (
	ScopeFullZone   CountScopeType = "FULL_ZONE"
	ScopeByLocation CountScopeType = "BY_LOCATION"
	ScopeBySku      CountScopeType = "BY_SKU"
)

type CountPlan struct {
	gorm.Model
	Code             string          `json:"code" gorm:"unique"`
	TenantID         string          `json:"tenant_id" gorm:"index"`
	WhsCode          string          `json:"whs_code"`
	ZoneID           string          `json:"zone_id"`
	PlannedDate      string          `json:"planned_date"`
	ScopeType        CountScopeType  `json:"scope_type"`
	ScopeParam       string          `json:"scope_param"`
	Status           CountPlanStatus `json:"status" gorm:"default:'DRAFT'"`
	RequiresApproval bool            `json:"requires_approval"`
	ApprovalNote     string          `json:"approval_note"`
	CancelReason     string          `json:"cancel_reason"`
	CreatedBy        int             `json:"created_by"`
	SubmittedBy      int             `json:"submitted_by"`
	SubmittedAt      string          `json:"submitted_at"`
	ApprovedBy       int             `json:"approved_by"`
	ApprovedAt       string          `json:"approved_at"`
	Lines            []CountLine     `json:"lines" gorm:"foreignKey:CountPlanID;references:ID;constraint:OnDelete:CASCADE"`
	Entries          []CountEntry    `json:"entries" gorm:"foreignKey:CountPlanID;references:ID;constraint:OnDelete:CASCADE"`
}

// CountLine freezes the projected quantity for one (SKU, location) pair at
// plan creation time. CountedQty and VarianceQty stay null until an entry
// resolves to the line.
type CountLine struct {
	gorm.Model
	CountPlanID uint            `json:"count_plan_id"`
	LineID      string          `json:"line_id" gorm:"index"`
	SkuID       string          `json:"sku_id"`
	LocationID  string          `json:"location_id"`
	SystemQty   float64         `json:"system_qty"`
	CountedQty  *float64        `json:"counted_qty"`
	VarianceQty *float64        `json:"variance_qty"`
	Status      CountLineStatus `json:"status" gorm:"default:'PENDING'"`
}

// CountEntry is the immutable audit record of one scan or manual count
// action. Many entries may target the same line; the line reflects the
// latest one.
type CountEntry struct {
	gorm.Model
	CountPlanID  uint     `json:"count_plan_id"`
	LineID       string   `json:"line_id"`
	ScanMode     ScanMode `json:"scan_mode"`
	ScannedValue string   `json:"scanned_value"`
	QtyCounted   float64  `json:"qty_counted"`
	Delta        float64  `json:"delta"`
	CreatedBy    int      `json:"created_by"`
	RecordedAt   string   `json:"recorded_at"`
}
