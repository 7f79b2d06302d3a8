// database/migrate.go
package database

import (
	"gorm.io/gorm"

	"wms-ledger/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Zone{},
		&models.Location{},
		&models.Sku{},
		&models.ReasonCode{},
		&models.VarianceConfig{},
		&models.MovementEntry{},
		&models.CountPlan{},
		&models.CountLine{},
		&models.CountEntry{},
		&models.Adjustment{},
	)
}
