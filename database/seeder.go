// database/seeder.go
package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wms-ledger/models"
)

const seedTenant = "TNT001"

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedZones(db)
	SeedLocations(db)
	SeedSkus(db)
	SeedReasonCodes(db)
	SeedVarianceConfig(db)
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	user := models.User{
		Username: "admin",
		Password: string(hashed),
		Name:     "Administrator",
		Email:    "admin@example.com",
		TenantID: seedTenant,
	}

	var existing models.User
	if err := db.Where("username = ?", user.Username).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			db.Create(&user)
		}
	}
}

func SeedZones(db *gorm.DB) {
	zones := []models.Zone{
		{TenantID: seedTenant, ZoneID: "ZN001", Name: "Storage A", ZoneType: models.ZoneTypeStorage, WhsCode: "WH001"},
		{TenantID: seedTenant, ZoneID: "ZN002", Name: "Storage B", ZoneType: models.ZoneTypeStorage, WhsCode: "WH001"},
		{TenantID: seedTenant, ZoneID: "ZN003", Name: "Quarantine", ZoneType: models.ZoneTypeQuarantine, WhsCode: "WH001"},
		{TenantID: seedTenant, ZoneID: "ZN004", Name: "Inbound Dock", ZoneType: models.ZoneTypeDock, WhsCode: "WH001"},
	}

	for _, z := range zones {
		var existing models.Zone
		if err := db.Where("tenant_id = ? AND zone_id = ?", z.TenantID, z.ZoneID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&z)
			}
		}
	}
}

func SeedLocations(db *gorm.DB) {
	locations := []models.Location{
		{TenantID: seedTenant, LocationID: "LOC000001", Code: "A1-01", ZoneID: "ZN001"},
		{TenantID: seedTenant, LocationID: "LOC000002", Code: "B1-01", ZoneID: "ZN002"},
		{TenantID: seedTenant, LocationID: "LOC000003", Code: "A1-02", ZoneID: "ZN001"},
		{TenantID: seedTenant, LocationID: "LOC000009", Code: "QA-01", ZoneID: "ZN003"},
	}

	for _, l := range locations {
		var existing models.Location
		if err := db.Where("tenant_id = ? AND location_id = ?", l.TenantID, l.LocationID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&l)
			}
		}
	}
}

func SeedSkus(db *gorm.DB) {
	skus := []models.Sku{
		{TenantID: seedTenant, SkuID: "SKU000001", Name: "Widget Small", Uom: "PCS", Epc: "EPC000001"},
		{TenantID: seedTenant, SkuID: "SKU000002", Name: "Widget Medium", Uom: "PCS", Epc: "EPC000002"},
		{TenantID: seedTenant, SkuID: "SKU000003", Name: "Widget Large", Uom: "PCS", Epc: "EPC000003"},
	}

	for _, s := range skus {
		var existing models.Sku
		if err := db.Where("tenant_id = ? AND sku_id = ?", s.TenantID, s.SkuID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&s)
			}
		}
	}
}

func SeedReasonCodes(db *gorm.DB) {
	reasons := []models.ReasonCode{
		{TenantID: seedTenant, Code: "CYCLE_COUNT", Name: "Cycle count correction"},
		{TenantID: seedTenant, Code: "DAMAGED", Name: "Damaged goods"},
		{TenantID: seedTenant, Code: "FOUND", Name: "Stock found"},
		{TenantID: seedTenant, Code: "LOST", Name: "Stock lost"},
		{TenantID: seedTenant, Code: "QA_HOLD", Name: "Quality hold"},
	}

	for _, r := range reasons {
		var existing models.ReasonCode
		if err := db.Where("tenant_id = ? AND code = ?", r.TenantID, r.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&r)
			}
		}
	}
}

func SeedVarianceConfig(db *gorm.DB) {
	cfg := models.VarianceConfig{
		TenantID:      seedTenant,
		Mode:          models.ThresholdModePercent,
		PercentValue:  5,
		AbsoluteValue: 10,
	}

	var existing models.VarianceConfig
	if err := db.Where("tenant_id = ?", cfg.TenantID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			db.Create(&cfg)
		}
	}
}
