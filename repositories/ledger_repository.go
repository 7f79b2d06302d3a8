package repositories

import (
	"gorm.io/gorm"

	"wms-ledger/models"
)

// LedgerRepository persists movement entries. Create only — the ledger table
// has no update or delete path.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db}
}

func (r *LedgerRepository) Append(entry *models.MovementEntry) error {
	return r.db.Create(entry).Error
}

func (r *LedgerRepository) List(tenantID, whsCode string) ([]models.MovementEntry, error) {
	q := r.db.Where("tenant_id = ?", tenantID)
	if whsCode != "" {
		q = q.Where("whs_code = ?", whsCode)
	}

	var entries []models.MovementEntry
	if err := q.Order("occurred_at asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
