package repositories

import (
	"errors"

	"gorm.io/gorm"

	"wms-ledger/models"
)

// RefDataRepository reads the master data this engine validates against.
// Master data itself is owned by an external collaborator, so this
// repository never writes.
type RefDataRepository struct {
	db *gorm.DB
}

func NewRefDataRepository(db *gorm.DB) *RefDataRepository {
	return &RefDataRepository{db}
}

func (r *RefDataRepository) Sku(tenantID, skuID string) (*models.Sku, bool) {
	var sku models.Sku
	if err := r.db.Where("tenant_id = ? AND sku_id = ? AND is_active = ?", tenantID, skuID, true).First(&sku).Error; err != nil {
		return nil, false
	}
	return &sku, true
}

func (r *RefDataRepository) SkuByEpc(tenantID, epc string) (*models.Sku, bool) {
	var sku models.Sku
	if err := r.db.Where("tenant_id = ? AND epc = ? AND is_active = ?", tenantID, epc, true).First(&sku).Error; err != nil {
		return nil, false
	}
	return &sku, true
}

func (r *RefDataRepository) Location(tenantID, locationID string) (*models.Location, bool) {
	var loc models.Location
	if err := r.db.Where("tenant_id = ? AND location_id = ? AND is_active = ?", tenantID, locationID, true).First(&loc).Error; err != nil {
		return nil, false
	}
	return &loc, true
}

func (r *RefDataRepository) LocationByCode(tenantID, code string) (*models.Location, bool) {
	var loc models.Location
	if err := r.db.Where("tenant_id = ? AND code = ? AND is_active = ?", tenantID, code, true).First(&loc).Error; err != nil {
		return nil, false
	}
	return &loc, true
}

func (r *RefDataRepository) Zone(tenantID, zoneID string) (*models.Zone, bool) {
	var zone models.Zone
	if err := r.db.Where("tenant_id = ? AND zone_id = ? AND is_active = ?", tenantID, zoneID, true).First(&zone).Error; err != nil {
		return nil, false
	}
	return &zone, true
}

func (r *RefDataRepository) ReasonCode(tenantID, code string) bool {
	var reason models.ReasonCode
	err := r.db.Where("tenant_id = ? AND code = ?", tenantID, code).First(&reason).Error
	return err == nil
}

func (r *RefDataRepository) VarianceConfig(tenantID string) (*models.VarianceConfig, bool) {
	var cfg models.VarianceConfig
	if err := r.db.Where("tenant_id = ?", tenantID).First(&cfg).Error; err != nil {
		return nil, false
	}
	return &cfg, true
}

func (r *RefDataRepository) Zones(tenantID string) ([]models.Zone, error) {
	var zones []models.Zone
	err := r.db.Where("tenant_id = ?", tenantID).Order("zone_id asc").Find(&zones).Error
	return zones, err
}

func (r *RefDataRepository) Locations(tenantID string) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Where("tenant_id = ?", tenantID).Order("location_id asc").Find(&locations).Error
	return locations, err
}

func (r *RefDataRepository) ReasonCodes(tenantID string) ([]models.ReasonCode, error) {
	var reasons []models.ReasonCode
	err := r.db.Where("tenant_id = ?", tenantID).Order("code asc").Find(&reasons).Error
	return reasons, err
}

// FindVarianceConfig is the list-endpoint variant of VarianceConfig, it keeps
// the not-found case as an error for the controller to map.
func (r *RefDataRepository) FindVarianceConfig(tenantID string) (*models.VarianceConfig, error) {
	var cfg models.VarianceConfig
	if err := r.db.Where("tenant_id = ?", tenantID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
