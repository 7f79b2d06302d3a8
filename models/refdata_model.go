package models

import (
	"gorm.io/gorm"
)

const (
	ZoneTypeDock       = "dock"
	ZoneTypeStorage    = "storage"
	ZoneTypeQuarantine = "quarantine"
	ZoneTypeOther      = "other"
)

type Zone struct {
	gorm.Model
	TenantID  string `json:"tenant_id" gorm:"uniqueIndex:idx_zone_tenant_zone"`
	ZoneID    string `json:"zone_id" gorm:"uniqueIndex:idx_zone_tenant_zone"`
	Name      string `json:"name"`
	ZoneType  string `json:"zone_type" gorm:"default:'storage'"`
	WhsCode   string `json:"whs_code"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int
	UpdatedBy int
}

type Location struct {
	gorm.Model
	TenantID   string `json:"tenant_id" gorm:"uniqueIndex:idx_loc_tenant_loc"`
	LocationID string `json:"location_id" gorm:"uniqueIndex:idx_loc_tenant_loc"`
	Code       string `json:"code"`
	ZoneID     string `json:"zone_id" gorm:"index"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	CreatedBy  int
	UpdatedBy  int
}

type Sku struct {
	gorm.Model
	TenantID  string `json:"tenant_id" gorm:"uniqueIndex:idx_sku_tenant_sku"`
	SkuID     string `json:"sku_id" gorm:"uniqueIndex:idx_sku_tenant_sku"`
	Name      string `json:"name"`
	Uom       string `json:"uom" gorm:"default:'PCS'"`
	Epc       string `json:"epc" gorm:"index"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int
	UpdatedBy int
}

type ReasonCode struct {
	gorm.Model
	TenantID  string `json:"tenant_id" gorm:"uniqueIndex:idx_reason_tenant_code"`
	Code      string `json:"code" gorm:"uniqueIndex:idx_reason_tenant_code"`
	Name      string `json:"name"`
	CreatedBy int
	UpdatedBy int
}

const (
	ThresholdModePercent  = "percent"
	ThresholdModeAbsolute = "absolute"
)

// VarianceConfig holds the tenant-wide threshold above which a count line is
// flagged for approval scrutiny.
type VarianceConfig struct {
	gorm.Model
	TenantID      string  `json:"tenant_id" gorm:"unique"`
	Mode          string  `json:"mode" gorm:"default:'percent'"`
	PercentValue  float64 `json:"percent_value"`
	AbsoluteValue float64 `json:"absolute_value"`
	UpdatedBy     int
}
