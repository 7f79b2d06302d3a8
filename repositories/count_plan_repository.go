package repositories

import (
	"errors"

	"gorm.io/gorm"

	"wms-ledger/models"
)

type CountPlanRepository struct {
	db *gorm.DB
}

func NewCountPlanRepository(db *gorm.DB) *CountPlanRepository {
	return &CountPlanRepository{db}
}

func (r *CountPlanRepository) Create(plan *models.CountPlan) error {
	return r.db.Create(plan).Error
}

func (r *CountPlanRepository) Get(tenantID, code string) (*models.CountPlan, error) {
	var plan models.CountPlan
	err := r.db.Preload("Lines").Preload("Entries").
		Where("tenant_id = ? AND code = ?", tenantID, code).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *CountPlanRepository) Save(plan *models.CountPlan) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(plan).Error
}

// Transition is the guarded status swap: the UPDATE only hits when the row
// still carries the expected status, so a concurrent approver loses the race
// instead of posting twice.
func (r *CountPlanRepository) Transition(tenantID, code string, from, to models.CountPlanStatus) (bool, error) {
	res := r.db.Model(&models.CountPlan{}).
		Where("tenant_id = ? AND code = ? AND status = ?", tenantID, code, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CountPlanRepository) LastCode(tenantID string) (string, error) {
	var plan models.CountPlan
	err := r.db.Where("tenant_id = ?", tenantID).Order("id desc").First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return plan.Code, nil
}

func (r *CountPlanRepository) List(tenantID string) ([]models.CountPlan, error) {
	var plans []models.CountPlan
	err := r.db.Where("tenant_id = ?", tenantID).Order("id desc").Find(&plans).Error
	return plans, err
}
