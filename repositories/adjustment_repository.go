package repositories

import (
	"errors"

	"gorm.io/gorm"

	"wms-ledger/models"
)

type AdjustmentRepository struct {
	db *gorm.DB
}

func NewAdjustmentRepository(db *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db}
}

func (r *AdjustmentRepository) Create(adj *models.Adjustment) error {
	return r.db.Create(adj).Error
}

func (r *AdjustmentRepository) Get(tenantID, code string) (*models.Adjustment, error) {
	var adj models.Adjustment
	err := r.db.Where("tenant_id = ? AND code = ?", tenantID, code).First(&adj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &adj, nil
}

func (r *AdjustmentRepository) Save(adj *models.Adjustment) error {
	return r.db.Save(adj).Error
}

func (r *AdjustmentRepository) Transition(tenantID, code string, from, to models.AdjustmentStatus) (bool, error) {
	res := r.db.Model(&models.Adjustment{}).
		Where("tenant_id = ? AND code = ? AND status = ?", tenantID, code, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AdjustmentRepository) LastCode(tenantID string) (string, error) {
	var adj models.Adjustment
	err := r.db.Where("tenant_id = ?", tenantID).Order("id desc").First(&adj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return adj.Code, nil
}

func (r *AdjustmentRepository) List(tenantID string) ([]models.Adjustment, error) {
	var adjustments []models.Adjustment
	err := r.db.Where("tenant_id = ?", tenantID).Order("id desc").Find(&adjustments).Error
	return adjustments, err
}
